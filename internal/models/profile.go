package models

import "strings"

// Profile is a configured server the client can log in to.
type Profile struct {
	ServerName   string `json:"server_name" db:"server_name"`
	Endpoint     string `json:"endpoint" db:"endpoint"`
	Secret       string `json:"secret,omitempty" db:"secret"`
	Username     string `json:"username,omitempty" db:"username"`
	Password     string `json:"password,omitempty" db:"password"`
	WakeEndpoint string `json:"wake_endpoint,omitempty" db:"wake_endpoint"`
	WakeSecret   string `json:"wake_secret,omitempty" db:"wake_secret"`
	IsDefault    bool   `json:"is_default" db:"is_default"`
	AutoMount    bool   `json:"auto_mount" db:"auto_mount"`
}

// HasCredentials reports whether the profile stores a default login.
func (p *Profile) HasCredentials() bool {
	return p.Username != "" && p.Password != ""
}

// HasWake reports whether a wake endpoint and its secret are configured.
func (p *Profile) HasWake() bool {
	return p.WakeEndpoint != "" && p.WakeSecret != ""
}

// BaseURL returns the endpoint without a trailing slash.
func (p *Profile) BaseURL() string {
	return strings.TrimRight(p.Endpoint, "/")
}
