package entity

var DefaultEvidenceTags = []string{"uploaded", "condition-compliance"}

type Evidence struct {
	ID          string   `json:"id" yaml:"id"`
	ConditionID string   `json:"conditionId" yaml:"conditionId"`
	FileName    string   `json:"fileName" yaml:"fileName"`
	UploadedBy  string   `json:"uploadedBy" yaml:"uploadedBy"`
	UploadDate  string   `json:"uploadDate" yaml:"uploadDate"`
	Tags        []string `json:"tags" yaml:"tags"`
	ContentType string   `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	Size        int64    `json:"size,omitempty" yaml:"size,omitempty"`
	BlobKey     string   `json:"-" yaml:"blobKey,omitempty"`
}

func (e Evidence) HasFile() bool {
	return e.BlobKey != ""
}

type UploadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type DownloadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}
