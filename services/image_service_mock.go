package services

import (
	"fmt"
	"mime/multipart"

	"github.com/rmoraes/phone-repair-api/utils"
)

// MockImageService is an in-memory ImageService used in tests so no AWS
// credentials or network access are needed.
type MockImageService struct {
	// Uploaded maps generated keys to original filenames
	Uploaded map[string]string
	// Deleted records keys passed to DeleteImage
	Deleted []string
	// UploadErr, when set, is returned by UploadImage after validation
	UploadErr error
}

// NewMockImageService creates an empty mock image service
func NewMockImageService() *MockImageService {
	return &MockImageService{
		Uploaded: make(map[string]string),
	}
}

// UploadImage validates the file like the real service, then records it in memory
func (m *MockImageService) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	key := fmt.Sprintf("designs/mock_%d_%s", len(m.Uploaded), fileHeader.Filename)
	m.Uploaded[key] = fileHeader.Filename
	return key, nil
}

// GetImageURL returns a deterministic fake URL for the key
func (m *MockImageService) GetImageURL(imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}
	return "https://mock-bucket.example.com/" + imageKey, nil
}

// DeleteImage records the deletion
func (m *MockImageService) DeleteImage(imageKey string) error {
	if imageKey == "" {
		return nil
	}
	m.Deleted = append(m.Deleted, imageKey)
	delete(m.Uploaded, imageKey)
	return nil
}
