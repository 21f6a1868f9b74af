package entity

// Session credencial opaca más la identidad autenticada.
type Session struct {
	Token string
	User  *User
}

// IsAuthenticated la sesión existe si hay token.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}
