package models

// TokenDetails holds a freshly issued access/refresh token pair.
// The UUIDs are the JWT IDs (jti) of each token; they are internal bookkeeping
// and never serialized to clients.
type TokenDetails struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	AccessUUID   string `json:"-"`
	RefreshUUID  string `json:"-"`
	AtExpires    int64  `json:"-"`
	RtExpires    int64  `json:"-"`
}
