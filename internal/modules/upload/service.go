package upload

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	MaxFileSize    = 3 * 1024 * 1024
	DefaultBaseDir = "./uploads"
	DefaultURLBase = "/uploads"
)

// Kind selects the multipart field name and the success message.
type Kind string

const (
	KindPassport    Kind = "passport"
	KindCertificate Kind = "certificate"
	KindDocument    Kind = "document"
)

var kindMessages = map[Kind]string{
	KindPassport:    "File uploaded successfully",
	KindCertificate: "Certificate uploaded successfully",
	KindDocument:    "Document uploaded successfully",
}

// AllowedMimeTypes maps sniffed content types to the extension stored on disk.
var AllowedMimeTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

func (k Kind) Valid() bool {
	_, ok := kindMessages[k]
	return ok
}

func (k Kind) SuccessMessage() string {
	return kindMessages[k]
}

// StoredFile is what the client gets back after an upload.
type StoredFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	Path         string `json:"path"`
}

// Service keeps uploads as flat files under baseDir so they can be
// addressed by name alone.
type Service struct {
	baseDir string
	urlBase string
}

func NewService(baseDir, urlBase string) *Service {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	if urlBase == "" {
		urlBase = DefaultURLBase
	}
	return &Service{baseDir: baseDir, urlBase: strings.TrimRight(urlBase, "/")}
}

func (s *Service) BaseDir() string {
	return s.baseDir
}

func (s *Service) Save(kind Kind, fileHeader *multipart.FileHeader) (*StoredFile, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	if fileHeader.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fileHeader.Size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]

	ext, ok := AllowedMimeTypes[mimeType]
	if !ok {
		return nil, ErrInvalidMimeType
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind file: %w", err)
	}

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename := fmt.Sprintf("%s-%s_%s%s", kind, uuid.New().String(), sanitizeName(fileHeader.Filename), ext)
	absPath := filepath.Join(s.baseDir, filename)

	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	written, err := io.Copy(dst, io.LimitReader(file, MaxFileSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if written > MaxFileSize {
		_ = os.Remove(absPath)
		return nil, ErrFileTooLarge
	}

	log.Printf("upload_saved kind=%s file=%s size=%d mime=%s", kind, filename, written, mimeType)

	return &StoredFile{
		Filename:     filename,
		OriginalName: fileHeader.Filename,
		Size:         written,
		Path:         s.urlBase + "/" + filename,
	}, nil
}

// Delete removes a stored file by its bare name. Names carrying any path
// component are rejected.
func (s *Service) Delete(filename string) error {
	if filename == "" || filename != filepath.Base(filename) || filename == "." || filename == ".." || strings.ContainsAny(filename, `/\`) {
		return ErrInvalidName
	}

	absPath := filepath.Join(s.baseDir, filename)
	if err := os.Remove(absPath); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	log.Printf("upload_deleted file=%s", filename)
	return nil
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" {
		return "file"
	}
	return name
}
