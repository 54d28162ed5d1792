// Package blob holds helpers shared by the object storage adapters.
package blob

import (
	"fmt"
	"net/url"
	"strings"
)

// ObjectURL builds the public URL of key inside bucket: <base>/<bucket>/<key>.
// Every path segment of key is escaped.
func ObjectURL(base, bucket, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(base, "/"), bucket, strings.Join(segments, "/"))
}

// ObjectKey is the inverse of ObjectURL.
func ObjectKey(base, bucket, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse object url %q: %w", rawURL, err)
	}

	basePath := ""
	if b, err := url.Parse(strings.TrimRight(base, "/")); err == nil {
		basePath = b.Path
	}

	p := strings.TrimPrefix(u.Path, basePath)
	prefix := "/" + bucket + "/"
	if !strings.HasPrefix(p, prefix) || len(p) == len(prefix) {
		return "", fmt.Errorf("object url %q is not inside bucket %q", rawURL, bucket)
	}
	return strings.TrimPrefix(p, prefix), nil
}
