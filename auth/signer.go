package auth

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	paramConsumerKey     = "oauth_consumer_key"
	paramNonce           = "oauth_nonce"
	paramSignature       = "oauth_signature"
	paramSignatureMethod = "oauth_signature_method"
	paramTimestamp       = "oauth_timestamp"
	paramVersion         = "oauth_version"
	paramRealm           = "realm"

	authorizationPrefix = "OAuth "
	formContentType     = "application/x-www-form-urlencoded"
)

// Signer adds OAuth 1.0a authorization to HTTP requests.
type Signer struct {
	credentials Credentials
	method      SignatureMethod
	noncer      Noncer
	now         func() time.Time
}

// SignerOption configures a Signer.
type SignerOption func(*Signer)

// WithSignatureMethod sets signature method, HMAC-SHA1 by default
func WithSignatureMethod(method SignatureMethod) SignerOption {
	return func(s *Signer) {
		if method != nil {
			s.method = method
		}
	}
}

// WithNoncer sets nonce generator
func WithNoncer(noncer Noncer) SignerOption {
	return func(s *Signer) {
		if noncer != nil {
			s.noncer = noncer
		}
	}
}

// WithClock sets time source used for oauth_timestamp
func WithClock(now func() time.Time) SignerOption {
	return func(s *Signer) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSigner creates a signer for the supplied consumer credentials.
func NewSigner(credentials Credentials, options ...SignerOption) *Signer {
	ret := &Signer{
		credentials: credentials,
		method:      HMACSHA1,
		noncer:      uuidNoncer{},
		now:         time.Now,
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Method returns the configured signature method.
func (s *Signer) Method() SignatureMethod {
	return s.method
}

// Sign sets the Authorization header on req. Form encoded bodies are read,
// included in the signature and restored.
func (s *Signer) Sign(req *http.Request) error {
	if err := s.credentials.Validate(); err != nil {
		return &SigningError{Method: req.Method, URL: req.URL.String(), Err: err}
	}
	oauthParams := map[string]string{
		paramConsumerKey:     s.credentials.ConsumerKey,
		paramNonce:           s.noncer.Nonce(),
		paramSignatureMethod: s.method.Name(),
		paramTimestamp:       strconv.FormatInt(s.now().Unix(), 10),
		paramVersion:         "1.0",
	}
	params, err := requestParams(req)
	if err != nil {
		return &SigningError{Method: req.Method, URL: req.URL.String(), Err: err}
	}
	for k, v := range oauthParams {
		params.Add(k, v)
	}
	base := BaseString(req.Method, req.URL, params)
	signature, err := s.method.Sign(base, signingKey(s.credentials.ConsumerSecret))
	if err != nil {
		return &SigningError{Method: req.Method, URL: req.URL.String(), Err: err}
	}
	oauthParams[paramSignature] = signature
	req.Header.Set("Authorization", authorizationHeader(oauthParams))
	return nil
}

// BaseString builds the RFC 5849 signature base string.
func BaseString(method string, u *url.URL, params url.Values) string {
	return strings.ToUpper(method) + "&" + escape(baseURL(u)) + "&" + escape(normalizeParams(params))
}

// ParseAuthorization extracts oauth parameters from an `Authorization: OAuth ...` header value.
func ParseAuthorization(header string) (map[string]string, error) {
	if !strings.HasPrefix(header, authorizationPrefix) {
		return nil, fmt.Errorf("unsupported authorization scheme: %q", header)
	}
	ret := map[string]string{}
	for _, part := range strings.Split(strings.TrimPrefix(header, authorizationPrefix), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("malformed authorization parameter: %q", part)
		}
		value = strings.Trim(value, "\"")
		decoded, err := url.PathUnescape(value)
		if err != nil {
			return nil, fmt.Errorf("malformed authorization parameter %v: %w", name, err)
		}
		ret[name] = decoded
	}
	return ret, nil
}

// Verify checks the OAuth signature of an incoming request against credentials.
func Verify(req *http.Request, credentials Credentials) error {
	oauthParams, err := ParseAuthorization(req.Header.Get("Authorization"))
	if err != nil {
		return err
	}
	if oauthParams[paramConsumerKey] != credentials.ConsumerKey {
		return fmt.Errorf("unknown consumer key: %q", oauthParams[paramConsumerKey])
	}
	method, ok := LookupSignatureMethod(oauthParams[paramSignatureMethod])
	if !ok {
		return fmt.Errorf("unsupported signature method: %q", oauthParams[paramSignatureMethod])
	}
	signature, ok := oauthParams[paramSignature]
	if !ok {
		return fmt.Errorf("missing %v", paramSignature)
	}
	params, err := requestParams(req)
	if err != nil {
		return err
	}
	for k, v := range oauthParams {
		if k == paramSignature || k == paramRealm {
			continue
		}
		params.Add(k, v)
	}
	u := *req.URL
	if u.Host == "" {
		u.Host = req.Host
	}
	if u.Scheme == "" {
		u.Scheme = "http"
		if req.TLS != nil {
			u.Scheme = "https"
		}
	}
	expected, err := method.Sign(BaseString(req.Method, &u, params), signingKey(credentials.ConsumerSecret))
	if err != nil {
		return err
	}
	if expected != signature {
		return fmt.Errorf("invalid signature")
	}
	return nil
}

func requestParams(req *http.Request) (url.Values, error) {
	params := url.Values{}
	for k, values := range req.URL.Query() {
		params[k] = append(params[k], values...)
	}
	if req.Body == nil || req.Body == http.NoBody {
		return params, nil
	}
	mediaType, _, _ := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if mediaType != formContentType {
		return params, nil
	}
	data, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	_ = req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(data))
	form, err := url.ParseQuery(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse form body: %w", err)
	}
	for k, values := range form {
		params[k] = append(params[k], values...)
	}
	return params, nil
}

func baseURL(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	if port := u.Port(); (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		host = strings.ToLower(u.Hostname())
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return scheme + "://" + host + path
}

func normalizeParams(params url.Values) string {
	type pair struct{ key, value string }
	var pairs []pair
	for k, values := range params {
		for _, v := range values {
			pairs = append(pairs, pair{key: escape(k), value: escape(v)})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].key == pairs[j].key {
			return pairs[i].value < pairs[j].value
		}
		return pairs[i].key < pairs[j].key
	})
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.key+"="+p.value)
	}
	return strings.Join(parts, "&")
}

func authorizationHeader(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"=\""+escape(params[k])+"\"")
	}
	return authorizationPrefix + strings.Join(parts, ", ")
}

// escape percent-encodes s leaving only RFC 3986 unreserved characters.
func escape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
