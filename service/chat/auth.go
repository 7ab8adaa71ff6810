package chat

import "ChatProject/tools/security"

// NewJWTAuthenticator verifies HMAC-signed bearer tokens and reads the user id
// from the "id" claim (or "sub").
func NewJWTAuthenticator(opts security.Options) Authenticator {
	return AuthenticatorFunc(func(token string) (UserID, error) {
		id, err := security.VerifyUserID(opts, token)
		if err != nil {
			return 0, err
		}
		return UserID(id), nil
	})
}
