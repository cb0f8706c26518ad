package codesandbox

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/matzehuels/sandboxer/pkg/errors"
)

const (
	// DefaultHost is the CodeSandbox service host.
	DefaultHost = "codesandbox.io"

	// DefaultPreviewFile is the file opened when the sandbox loads.
	DefaultPreviewFile = "/example.tsx"

	definePath = "/api/v1/sandboxes/define"
)

// File is a single file of a sandbox project.
type File struct {
	IsBinary bool   `json:"isBinary"`
	Content  string `json:"content"`
}

// Files maps sandbox file paths to their contents.
type Files map[string]File

type defineParameters struct {
	Files Files `json:"files"`
}

var urlSafe = strings.NewReplacer("+", "-", "/", "_")
var urlUnsafe = strings.NewReplacer("-", "+", "_", "/")

// Parameters encodes files into the opaque "parameters" value accepted by
// the define API, following getParameters from codesandbox-import-utils:
// compact JSON (HTML characters unescaped, keys sorted), LZ-string base64,
// '+' and '/' made URL safe, trailing '=' removed.
func Parameters(files Files) (string, error) {
	if len(files) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "sandbox project has no files")
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(defineParameters{Files: files}); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "serialize sandbox files")
	}
	payload := strings.TrimSuffix(buf.String(), "\n")
	return strings.TrimRight(urlSafe.Replace(compressToBase64(payload)), "="), nil
}

// DecodeParameters reverses [Parameters].
func DecodeParameters(params string) (Files, error) {
	params = strings.TrimSpace(params)
	if params == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "parameters cannot be empty")
	}
	payload, ok := decompressFromBase64(urlUnsafe.Replace(params))
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "parameters are not a valid compressed payload")
	}
	var p defineParameters
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode sandbox files")
	}
	return p.Files, nil
}

// DefineURL builds the define URL for encoded parameters. The preview file
// is passed through the "query" parameter as file=<path>, percent-encoded.
func DefineURL(host, params, previewFile string) string {
	if host == "" {
		host = DefaultHost
	}
	if previewFile == "" {
		previewFile = DefaultPreviewFile
	}
	return fmt.Sprintf("https://%s%s?parameters=%s&query=file%%3D%s",
		host, definePath, params, url.QueryEscape(previewFile))
}

// ParseDefineURL extracts the parameters and preview file from a define URL.
// A bare parameters string is accepted as well.
func ParseDefineURL(raw string) (params, previewFile string, err error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		return raw, "", nil
	}
	if err := errors.ValidateURL(raw); err != nil {
		return "", "", err
	}
	u, perr := url.Parse(raw)
	if perr != nil {
		return "", "", errors.Wrap(errors.ErrCodeInvalidInput, perr, "parse define URL")
	}
	if u.Path != definePath {
		return "", "", errors.New(errors.ErrCodeInvalidInput, "not a define URL: %s", u.Path)
	}
	q := u.Query()
	params = q.Get("parameters")
	if inner, qerr := url.ParseQuery(q.Get("query")); qerr == nil {
		previewFile = inner.Get("file")
	}
	return params, previewFile, nil
}
