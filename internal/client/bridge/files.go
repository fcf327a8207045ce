package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/pitwall/paddockpress/internal/common"
)

// RemoteFile is one entry of the remote file listing. Date is unix seconds;
// zero when the remote entry carries no timestamp.
type RemoteFile struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
	Type string `json:"type"`
	Date int64  `json:"date"`
}

// DebugInfo is the file endpoint's operational introspection payload.
type DebugInfo struct {
	DirWritable bool   `json:"dir_writable"`
	PHPUser     string `json:"php_user"`
	FileCount   int    `json:"file_count"`
	UploadDir   string `json:"upload_dir"`
	V           string `json:"v"`
}

// ListFiles fetches the remote file listing, the ground truth the local
// media index is reconciled against.
func (c *Client) ListFiles(ctx context.Context) ([]RemoteFile, error) {
	cfg := c.config()
	u := fmt.Sprintf("%s?action=list&key=%s", cfg.FilesEndpoint, url.QueryEscape(cfg.APIKey))

	body, err := c.do(ctx, http.MethodGet, u, "", nil)
	if err != nil {
		return nil, err
	}

	var files []RemoteFile
	if err := json.Unmarshal(body, &files); err != nil {
		return nil, fmt.Errorf("%w: listing is not a file array: %s", common.ErrorProtocol, snippet(body))
	}
	return files, nil
}

// UploadFile sends one file as a multipart POST. The shared key travels in a
// header because the body is the file itself.
func (c *Client) UploadFile(ctx context.Context, name, contentType string, r io.Reader) error {
	cfg := c.config()

	var buf strings.Builder
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return fmt.Errorf("read upload payload: %w", err)
	}
	if contentType != "" {
		if err := mw.WriteField("type", contentType); err != nil {
			return fmt.Errorf("build multipart body: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.FilesEndpoint, strings.NewReader(buf.String()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(common.KeyHeaderName, cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", common.ErrorNetwork, err)
	}
	return decodeFileAck(resp.StatusCode, body)
}

// DeleteFile removes one file by name.
func (c *Client) DeleteFile(ctx context.Context, name string) error {
	cfg := c.config()

	form := url.Values{}
	form.Set("action", "delete")
	form.Set("file", name)
	form.Set("key", cfg.APIKey)

	body, err := c.do(ctx, http.MethodPost, cfg.FilesEndpoint, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	return decodeFileAck(http.StatusOK, body)
}

// DebugPaths fetches operational diagnostics from the file endpoint.
func (c *Client) DebugPaths(ctx context.Context) (*DebugInfo, error) {
	cfg := c.config()
	u := fmt.Sprintf("%s?action=debug_paths&key=%s", cfg.FilesEndpoint, url.QueryEscape(cfg.APIKey))

	body, err := c.do(ctx, http.MethodGet, u, "", nil)
	if err != nil {
		return nil, err
	}

	var info DebugInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("%w: debug payload malformed: %s", common.ErrorProtocol, snippet(body))
	}
	return &info, nil
}

func decodeFileAck(status int, body []byte) error {
	switch {
	case status == http.StatusForbidden:
		return fmt.Errorf("%w: key rejected (%s)", common.ErrorAuth, snippet(body))
	case status < 200 || status > 299:
		return fmt.Errorf("%w: status %d: %s", common.ErrorProtocol, status, snippet(body))
	}

	var ack struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Debug   string `json:"debug"`
	}
	if err := json.Unmarshal(body, &ack); err != nil {
		return fmt.Errorf("%w: file endpoint returned non-JSON body: %s", common.ErrorProtocol, snippet(body))
	}
	if !ack.Success {
		msg := firstNonEmpty(ack.Error, snippet(body))
		if ack.Debug != "" {
			msg += " (" + ack.Debug + ")"
		}
		return fmt.Errorf("%w: %s", common.ErrorProtocol, msg)
	}
	return nil
}
