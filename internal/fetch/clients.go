package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"

	"github.com/at-ishikawa/tango/internal/fetch/dictapi"
)

//go:generate mockgen -source=clients.go -destination=../mocks/fetch/mock_clients.go -package=mock_fetch

// DictionaryClient resolves a normalized word into its dictionary extract.
type DictionaryClient interface {
	Lookup(ctx context.Context, word string) (dictapi.Extract, error)
}

// TranslationClient translates an English text fragment into Japanese.
type TranslationClient interface {
	Translate(ctx context.Context, text string) (string, error)
}

// HTTPDictionaryClient looks words up on the free dictionary API, with an
// optional on-disk cache of raw responses.
type HTTPDictionaryClient struct {
	httpClient *resty.Client
	cache      *fileCache
}

// NewHTTPDictionaryClient creates a dictionary client. An empty cacheDir
// disables response caching.
func NewHTTPDictionaryClient(baseURL, cacheDir string) *HTTPDictionaryClient {
	client := resty.New()
	client.SetBaseURL(baseURL)

	dictionaryClient := &HTTPDictionaryClient{httpClient: client}
	if cacheDir != "" {
		dictionaryClient.cache = newFileCache(cacheDir)
	}
	return dictionaryClient
}

func (client *HTTPDictionaryClient) lookupAPI(ctx context.Context, word string) ([]byte, error) {
	res, err := client.httpClient.R().
		SetContext(ctx).
		Get("/api/v2/entries/en/" + url.PathEscape(word))
	if err != nil {
		return nil, fmt.Errorf("client.R().Get > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("dict_http_%d", res.StatusCode())
	}
	return res.Body(), nil
}

// Lookup fetches and reduces the dictionary entry for a word.
func (client *HTTPDictionaryClient) Lookup(ctx context.Context, word string) (dictapi.Extract, error) {
	var extract dictapi.Extract

	lookup := func() ([]byte, error) {
		return client.lookupAPI(ctx, word)
	}
	var contents []byte
	var err error
	if client.cache != nil {
		contents, err = client.cache.cache(word, lookup)
	} else {
		contents, err = lookup()
	}
	if err != nil {
		return extract, err
	}

	var response dictapi.Response
	if err := json.Unmarshal(contents, &response); err != nil {
		return extract, fmt.Errorf("json.Unmarshal > %w", err)
	}
	return response.ToExtract(), nil
}

// HTTPTranslationClient translates via the MyMemory public API.
type HTTPTranslationClient struct {
	httpClient    *resty.Client
	langPair      string
	retryAttempts uint
}

// NewHTTPTranslationClient creates a translation client for the given
// language pair (e.g. "en|ja"). retryAttempts caps transport-level retries
// on rate limiting; the attempt stays bounded by the caller's context.
func NewHTTPTranslationClient(baseURL, langPair string, retryAttempts uint) *HTTPTranslationClient {
	client := resty.New()
	client.SetBaseURL(baseURL)

	return &HTTPTranslationClient{
		httpClient:    client,
		langPair:      langPair,
		retryAttempts: retryAttempts,
	}
}

type translationResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
}

// isRetryableError reports whether a translation failure is worth retrying
// within the same attempt: rate limiting and server errors only.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "ja_http_429") || strings.Contains(errStr, "ja_http_5")
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// Translate returns the translated text, whitespace-collapsed and trimmed.
// An empty translation is returned as-is; the caller decides what emptiness
// means.
func (client *HTTPTranslationClient) Translate(ctx context.Context, text string) (string, error) {
	var translated string
	if err := retry.Do(
		func() error {
			out, err := client.translateAPI(ctx, text)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			translated = out
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.retryAttempts+1),
		retry.LastErrorOnly(true),
	); err != nil {
		return "", err
	}
	return translated, nil
}

func (client *HTTPTranslationClient) translateAPI(ctx context.Context, text string) (string, error) {
	res, err := client.httpClient.R().
		SetContext(ctx).
		SetQueryParam("q", text).
		SetQueryParam("langpair", client.langPair).
		Get("/get")
	if err != nil {
		return "", fmt.Errorf("client.R().Get > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("ja_http_%d", res.StatusCode())
	}

	var response translationResponse
	if err := json.Unmarshal(res.Body(), &response); err != nil {
		return "", fmt.Errorf("json.Unmarshal > %w", err)
	}
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(response.ResponseData.TranslatedText, " ")), nil
}
