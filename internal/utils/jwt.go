package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID    string `json:"uid"`
	Tier      string `json:"tier"`
	Kind      string `json:"kind"` // real / demo
	TrialEnds int64  `json:"trial_ends,omitempty"`
	jwt.RegisteredClaims
}

func SignJWT(secret, userID, tier, kind string, trialEnds int64, expiresMin int) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Tier:      tier,
		Kind:      kind,
		TrialEnds: trialEnds,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiresMin) * time.Minute)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
