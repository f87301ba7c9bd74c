package dto

// LoginReq は/auth/loginエンドポイントのリクエストボディを表します。
// OAuth2のパスワードフローに合わせ、フォームフィールド名はusername/passwordです
// （usernameにはメールアドレスが入ります）。
type LoginReq struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}
