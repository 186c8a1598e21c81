package domain

// Image описывает файл изображения, который сохраняется в хранилище
type Image struct {
	ObjectKey   string // имя файла в хранилище
	Bytes       []byte
	Size        int64
	ContentType string
}

func NewImage(objectKey string, data []byte, size int64, contentType string) *Image {
	return &Image{
		ObjectKey:   objectKey,
		Bytes:       data,
		Size:        size,
		ContentType: contentType,
	}
}
