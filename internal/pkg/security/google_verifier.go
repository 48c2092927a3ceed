package security

import (
	"Evergreen/internal/api/config"
	"context"
	"errors"
	"time"

	"github.com/go-resty/resty/v2"
)

// GoogleTokenInfo tokeninfo 端点返回的关键字段
type GoogleTokenInfo struct {
	Sub           string `json:"sub"`
	Aud           string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleVerifier 通过 Google tokeninfo 端点校验 ID Token
type GoogleVerifier struct {
	httpClient *resty.Client
}

func NewGoogleVerifier() *GoogleVerifier {
	client := resty.New().
		SetTimeout(10 * time.Second)

	return &GoogleVerifier{
		httpClient: client,
	}
}

// Verify 校验 ID Token 并返回其声明
// 同时校验 audience 防止其他应用签发的 Token 被复用
func (s *GoogleVerifier) Verify(ctx context.Context, idToken string) (*GoogleTokenInfo, error) {
	cfg := config.Cfg.Google

	var info GoogleTokenInfo
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetQueryParam("id_token", idToken).
		SetResult(&info).
		Get(cfg.TokenInfoURL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, errors.New("tokeninfo 校验失败")
	}

	if cfg.ClientID != "" && info.Aud != cfg.ClientID {
		return nil, errors.New("audience 不匹配")
	}
	if info.Email == "" {
		return nil, errors.New("凭证缺少邮箱")
	}

	return &info, nil
}
