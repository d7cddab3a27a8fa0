package wallet

import (
	"github.com/golang-jwt/jwt"
)

// JwtCustomClaims carries the connected wallet inside the session token
type JwtCustomClaims struct {
	Address string `json:"address"`
	Wallet  string `json:"wallet"`
	jwt.StandardClaims
}
