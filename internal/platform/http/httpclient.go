// Package http provides the outbound HTTP client used by service adapters.
package http

import (
	"net"
	"net/http"
	"time"
)

// DefaultTimeout is applied when the caller passes a non-positive timeout.
const DefaultTimeout = 30 * time.Second

// NewHTTPClient は予測サービス呼び出し用のHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: 環境変数（HTTP_PROXYなど）が設定されている場合に使用
//   - Dialer.Timeout: TCP接続タイムアウト（5秒）
//   - MaxIdleConns: 最大アイドル接続数（接続先は予測サービス1つのため10）
//   - IdleConnTimeout / TLSHandshakeTimeout: アイドル接続の維持期間とハンドシェイクの上限
//   - Client.Timeout: リクエスト全体のタイムアウト（0以下ならDefaultTimeout）
//
// http.DefaultClientにはタイムアウトがないため使用しません。
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
