package entity

import (
	"fmt"
	"net/url"
)

// DocumentScheme marks document references into the service's own file storage.
const DocumentScheme = "blob"

type Permit struct {
	ID             string `json:"id" yaml:"id"`
	Project        string `json:"project" yaml:"project"`
	Name           string `json:"name" yaml:"name"`
	Jurisdiction   string `json:"jurisdiction" yaml:"jurisdiction"`
	Type           string `json:"type" yaml:"type"`
	EffectiveDate  string `json:"effectiveDate" yaml:"effectiveDate"`
	ExpirationDate string `json:"expirationDate" yaml:"expirationDate"`
	Owner          string `json:"owner" yaml:"owner"`
	Status         Status `json:"status" yaml:"status"`
	Description    string `json:"description,omitempty" yaml:"description,omitempty"`
	DocumentURL    string `json:"documentUrl,omitempty" yaml:"documentUrl,omitempty"`
	DocumentName   string `json:"documentName,omitempty" yaml:"documentName,omitempty"`
}

// HasDocument reports whether a real document is attached to the permit.
func (p Permit) HasDocument() bool {
	return p.DocumentURL != ""
}

// CheckDocumentURL accepts an empty reference, a blob:// reference, or an
// absolute http(s) URL with a host.
func CheckDocumentURL(raw string) error {
	if raw == "" {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: invalid document url: %w", ErrIncorrectRequestBody, err)
	}

	switch u.Scheme {
	case DocumentScheme:
		if u.Host == "" && u.Path == "" {
			return fmt.Errorf("%w: empty document reference", ErrIncorrectRequestBody)
		}
	case "http", "https":
		if u.Hostname() == "" || u.User != nil {
			return fmt.Errorf("%w: document url %q needs a host and no credentials", ErrIncorrectRequestBody, raw)
		}
	default:
		return fmt.Errorf("%w: unsupported document url scheme %q", ErrIncorrectRequestBody, u.Scheme)
	}

	return nil
}
