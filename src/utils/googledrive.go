package utils

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"sync"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const driveFolderMimeType = "application/vnd.google-apps.folder"

var (
	// Common Google Drive URL shapes
	driveFileIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`),                     // /file/d/FILE_ID
		regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`),             // /spreadsheets/d/FILE_ID
		regexp.MustCompile(`id=([a-zA-Z0-9_-]+)`),                          // ?id=FILE_ID
		regexp.MustCompile(`/folders/([a-zA-Z0-9_-]+)`),                    // /folders/FOLDER_ID
		regexp.MustCompile(`drive\.google\.com/open\?id=([a-zA-Z0-9_-]+)`), // open?id=FILE_ID
	}
	driveHostPattern = regexp.MustCompile(`(drive|docs)\.google\.com`)
)

// GoogleDrive downloads spreadsheets with a service account. The API client is created on
// first use.
type GoogleDrive struct {
	credentialsPath string
	credentialsJSON string

	once    sync.Once
	service *drive.Service
	initErr error
}

// NewGoogleDrive configures a client from a credentials file path or the credentials JSON itself.
func NewGoogleDrive(credentialsPath, credentialsJSON string) *GoogleDrive {
	return &GoogleDrive{credentialsPath: credentialsPath, credentialsJSON: credentialsJSON}
}

// Configured reports whether any service account credentials were provided.
func (g *GoogleDrive) Configured() bool {
	return g.credentialsPath != "" || g.credentialsJSON != ""
}

func (g *GoogleDrive) init(ctx context.Context) error {
	g.once.Do(func() {
		credsBytes := []byte(g.credentialsJSON)
		if g.credentialsPath != "" {
			b, err := os.ReadFile(g.credentialsPath)
			if err != nil {
				g.initErr = fmt.Errorf("error reading credentials file: %w", err)
				return
			}
			credsBytes = b
		}
		if len(credsBytes) == 0 {
			g.initErr = fmt.Errorf("GOOGLE_DRIVE_CREDENTIALS_PATH or GOOGLE_DRIVE_CREDENTIALS_JSON must be set")
			return
		}

		creds, err := google.CredentialsFromJSON(ctx, credsBytes, drive.DriveReadonlyScope)
		if err != nil {
			g.initErr = fmt.Errorf("error loading credentials: %w", err)
			return
		}
		g.service, err = drive.NewService(ctx, option.WithCredentials(creds))
		if err != nil {
			g.initErr = fmt.Errorf("error creating Google Drive service: %w", err)
			return
		}

		log.Printf("[GOOGLE_DRIVE] Service initialized")
	})
	return g.initErr
}

// Download fetches the file a Drive share URL points to.
func (g *GoogleDrive) Download(ctx context.Context, url string) (io.ReadCloser, string, error) {
	fileID, err := ExtractFileIDFromURL(url)
	if err != nil {
		return nil, "", err
	}
	if err := g.init(ctx); err != nil {
		return nil, "", err
	}

	log.Printf("[GOOGLE_DRIVE] Downloading file with ID: %s", fileID)

	file, err := g.service.Files.Get(fileID).Fields("id", "name", "mimeType", "size").Context(ctx).Do()
	if err != nil {
		return nil, "", fmt.Errorf("error fetching file metadata: %w", err)
	}

	log.Printf("[GOOGLE_DRIVE] File found: %s (type: %s, size: %d bytes)", file.Name, file.MimeType, file.Size)

	if file.MimeType == driveFolderMimeType {
		return nil, "", fmt.Errorf("google drive folders cannot be downloaded")
	}

	resp, err := g.service.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, "", fmt.Errorf("error downloading file: %w", err)
	}

	log.Printf("[GOOGLE_DRIVE] File downloaded: %s", file.Name)

	return resp.Body, file.Name, nil
}

// ExtractFileIDFromURL pulls the file id out of a Google Drive URL
func ExtractFileIDFromURL(url string) (string, error) {
	for _, re := range driveFileIDPatterns {
		if matches := re.FindStringSubmatch(url); len(matches) > 1 {
			return matches[1], nil
		}
	}
	return "", fmt.Errorf("could not extract a file id from URL: %s", url)
}

// IsGoogleDriveURL reports whether url points at Google Drive
func IsGoogleDriveURL(url string) bool {
	return driveHostPattern.MatchString(url)
}
