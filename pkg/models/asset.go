package models

// Asset is an uploaded image held for the duration of a single request.
type Asset struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Data        []byte `json:"-"`
}

func NewAsset(fileName, contentType string, data []byte) *Asset {
	return &Asset{
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}
}
