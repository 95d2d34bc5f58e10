package share

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/setscore/setscore/pkg/setlist"
)

// ErrNoData marks a URL that carries no share payload at all, as opposed
// to one carrying a corrupted payload.
var ErrNoData = errors.New("url has no share data")

// QueryParam is the query parameter carrying the encoded prediction.
const QueryParam = "data"

// MaxDataLength is the practical budget for the encoded payload. Common
// browser and server limits sit around 2000 characters for the whole URL;
// this leaves headroom for the base address.
const MaxDataLength = 1800

// ShareURL builds a shareable URL for the prediction on top of baseURL.
func ShareURL(p *setlist.Prediction, baseURL string) (string, error) {
	data, err := Compress(p)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base url: %w", err)
	}
	q := u.Query()
	q.Set(QueryParam, data)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ParseShareURL extracts and decodes the prediction from a share URL.
// A URL without the data parameter returns ErrNoData; a present but
// undecodable payload returns ErrCorrupted.
func ParseShareURL(raw string) (*setlist.Prediction, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing share url: %w", err)
	}
	data := u.Query().Get(QueryParam)
	if data == "" {
		return nil, ErrNoData
	}
	return Decompress(data)
}

// CanShare reports whether the prediction's encoded form fits the URL
// length budget.
func CanShare(p *setlist.Prediction) bool {
	data, err := Compress(p)
	if err != nil {
		return false
	}
	return len(data) <= MaxDataLength
}
