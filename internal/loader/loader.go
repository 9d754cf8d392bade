// internal/loader/loader.go
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"prodview/internal/catalog"
)

// Fetch reads the bulk load source, either a local JSON file or an
// http(s) URL yielding a JSON array of products. Any fetch or parse
// failure is a *catalog.LoadError: the initial render is fatal on it.
// Shape validation (id and title present) happens in Store.Load.
func Fetch(ctx context.Context, source string) ([]catalog.Product, error) {
	raw, err := read(ctx, source)
	if err != nil {
		return nil, err
	}
	var records []catalog.Product
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &catalog.LoadError{Reason: fmt.Sprintf("parse %s", source), Err: err}
	}
	return records, nil
}

func read(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, &catalog.LoadError{Reason: "build request", Err: err}
		}
		client := &http.Client{Timeout: 30 * time.Second}
		resp, err := client.Do(req)
		if err != nil {
			return nil, &catalog.LoadError{Reason: fmt.Sprintf("fetch %s", source), Err: err}
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, &catalog.LoadError{Reason: fmt.Sprintf("fetch %s: status %d", source, resp.StatusCode)}
		}
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &catalog.LoadError{Reason: fmt.Sprintf("read %s", source), Err: err}
		}
		return raw, nil
	}

	raw, err := os.ReadFile(source)
	if err != nil {
		return nil, &catalog.LoadError{Reason: fmt.Sprintf("read %s", source), Err: err}
	}
	return raw, nil
}
