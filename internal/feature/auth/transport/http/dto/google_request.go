package dto

// GoogleLoginReq は/auth/googleエンドポイントのリクエストボディを表します。
// tokenにはGoogleが発行したIDトークンが入ります。
type GoogleLoginReq struct {
	Token string `json:"token" binding:"required"`
}
