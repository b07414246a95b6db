// Package seed provides the initial dataset the service starts from.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/samandr77/microservices/compliance/internal/entity"
)

//go:embed dataset.yaml
var defaultDataset []byte

// Default returns a fresh copy of the built-in dataset.
func Default() entity.Dataset {
	d, err := Parse(defaultDataset)
	if err != nil {
		panic(fmt.Sprintf("embedded dataset: %s", err))
	}

	return d
}

// Load reads a dataset file; an empty path yields the built-in dataset.
func Load(path string) (entity.Dataset, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return entity.Dataset{}, fmt.Errorf("read seed file: %w", err)
	}

	return Parse(data)
}

func Parse(data []byte) (entity.Dataset, error) {
	var d entity.Dataset

	err := yaml.Unmarshal(data, &d)
	if err != nil {
		return entity.Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}

	err = validate(d)
	if err != nil {
		return entity.Dataset{}, err
	}

	return d, nil
}

func validate(d entity.Dataset) error {
	for _, p := range d.Permits {
		if p.ID == "" || !p.Status.IsValid() {
			return fmt.Errorf("%w: permit %q", entity.ErrIncorrectRequestBody, p.ID)
		}
	}

	for _, c := range d.Conditions {
		if c.ID == "" || !c.Status.IsValid() || !c.RiskLevel.IsValid() {
			return fmt.Errorf("%w: condition %q", entity.ErrIncorrectRequestBody, c.ID)
		}
	}

	for _, e := range d.Evidence {
		if e.ID == "" {
			return fmt.Errorf("%w: evidence without id", entity.ErrIncorrectRequestBody)
		}
	}

	return nil
}
