package http

import (
	"net"
	"net/http"
	"time"
)

// TransportWrapper は RoundTripper を装飾します（計測など）。
type TransportWrapper func(http.RoundTripper) http.RoundTripper

// NewHTTPClient はLLM・OCRなど外部API呼び出し用に設定されたHTTPクライアントを作成します。
//
// 設定:
//   - Proxy: 環境変数（HTTP_PROXYなど）が設定されている場合に使用
//   - Dialer.Timeout: TCP接続タイムアウト（デフォルトより短い）
//   - MaxIdleConns: 最大アイドル接続数
//   - TLSHandshakeTimeout: HTTPSハンドシェイクの最大時間
//   - Client.Timeout: リクエスト全体のタイムアウト（LLM_TIMEOUT）
//   - wrappers: 渡された順に外側へ重ねる
//
// 注意:
//   - http.DefaultClientにはタイムアウトがないため、常にこのクライアントを使用すること
//   - LLM呼び出しではこのタイムアウトが唯一の時間制限になる
func NewHTTPClient(timeout time.Duration, wrappers ...TransportWrapper) *http.Client {
	var rt http.RoundTripper = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	for _, wrap := range wrappers {
		if wrap != nil {
			rt = wrap(rt)
		}
	}
	return &http.Client{Timeout: timeout, Transport: rt}
}
