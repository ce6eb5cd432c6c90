package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/you/blogsvc/domain"
	"go.uber.org/zap"
)

const (
	// DefaultVerifyURL is Google's reCAPTCHA v3 endpoint
	DefaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"
	// DefaultThreshold is the lowest score treated as human
	DefaultThreshold = 0.5
)

// siteVerifyResponse is the subset of the scoring response we rely on
type siteVerifyResponse struct {
	Success    bool     `json:"success"`
	Score      float64  `json:"score"`
	ErrorCodes []string `json:"error-codes"`
}

// RecaptchaService implements domain.HumanVerifier against a reCAPTCHA-style
// scoring endpoint
type RecaptchaService struct {
	client    *http.Client
	verifyURL string
	secret    string
	threshold float64
	logger    *zap.Logger
}

// NewRecaptchaService creates a new scoring client
func NewRecaptchaService(secret, verifyURL string, threshold float64, timeout time.Duration, logger *zap.Logger) *RecaptchaService {
	if verifyURL == "" {
		verifyURL = DefaultVerifyURL
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecaptchaService{
		client:    &http.Client{Timeout: timeout},
		verifyURL: verifyURL,
		secret:    secret,
		threshold: threshold,
		logger:    logger,
	}
}

// Verify implements domain.HumanVerifier
func (s *RecaptchaService) Verify(ctx context.Context, proofToken string) (res domain.Result) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("captcha verification panicked", zap.Any("panic", r))
			res = domain.Failure(domain.MsgCaptchaFailed)
		}
	}()

	body, err := s.siteVerify(ctx, proofToken)
	if err != nil {
		s.logger.Warn("captcha verification failed", zap.Error(err))
		return domain.Failure(domain.MsgCaptchaFailed)
	}
	if !body.Success {
		s.logger.Info("captcha rejected", zap.Strings("error_codes", body.ErrorCodes))
		return domain.Failure(domain.MsgCaptchaFailed)
	}
	if body.Score < s.threshold {
		s.logger.Info("captcha score below threshold", zap.Float64("score", body.Score))
		return domain.Failure(domain.MsgNotHuman)
	}
	return domain.Success("")
}

func (s *RecaptchaService) siteVerify(ctx context.Context, proofToken string) (*siteVerifyResponse, error) {
	form := url.Values{}
	form.Set("secret", s.secret)
	form.Set("response", proofToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call captcha service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrCaptchaResponse, resp.StatusCode)
	}

	var body siteVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCaptchaResponse, err)
	}
	return &body, nil
}

// Disabled accepts every proof token; wired when captcha checks are turned off
type Disabled struct{}

// Verify implements domain.HumanVerifier
func (Disabled) Verify(context.Context, string) domain.Result { return domain.Success("") }

var (
	_ domain.HumanVerifier = (*RecaptchaService)(nil)
	_ domain.HumanVerifier = Disabled{}
)
