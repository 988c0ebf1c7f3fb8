package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readBodyJSON(r *http.Request, maxBytes int64, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

// pathTail returns the path segment after prefix, "" when absent.
func pathTail(path, prefix string) string {
	tail := strings.TrimPrefix(path, prefix)
	tail = strings.Trim(tail, "/")
	if i := strings.IndexByte(tail, '/'); i >= 0 {
		tail = tail[:i]
	}
	return tail
}

// readUploadedFile pulls the "file" part out of a multipart upload.
func readUploadedFile(r *http.Request, maxBytes int64) (string, []byte, error) {
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return "", nil, err
	}
	f, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, err
	}
	defer f.Close()
	blob, err := io.ReadAll(io.LimitReader(f, maxBytes))
	if err != nil {
		return "", nil, err
	}
	return header.Filename, blob, nil
}
