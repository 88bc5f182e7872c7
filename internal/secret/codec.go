// Package secret implements the rolling-secret envelope: an AES-256-CBC
// channel whose key changes every UTC minute.
package secret

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"neptis/internal/errs"
)

// Alphabet is the symbol set of seed passwords and of the base-72 rendering.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*()"

// Delimiter separates the parts of a seed string.
const Delimiter = ";"

const (
	keyPeriod  = 60
	keyDigits  = otp.Digits(8)
	securePath = "/secure/"
	apiPrefix  = "/api"
)

// Seed is the shared configuration the channel is keyed by.
type Seed struct {
	KeyA     []byte
	KeyB     []byte
	Password string
}

// ParseSeed decodes "<b64 Ka>;<b64 Kb>;<password>".
func ParseSeed(s string) (*Seed, error) {
	parts := strings.SplitN(strings.TrimSpace(s), Delimiter, 3)
	if len(parts) != 3 {
		return nil, errs.Errorf(errs.Configuration, "secret.parse", "expected 3 parts, got %d", len(parts))
	}

	ka, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, errs.E(errs.Configuration, "secret.parse", fmt.Errorf("invalid first key: %w", err))
	}
	kb, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, errs.E(errs.Configuration, "secret.parse", fmt.Errorf("invalid second key: %w", err))
	}
	if len(ka) == 0 || len(kb) == 0 {
		return nil, errs.Errorf(errs.Configuration, "secret.parse", "empty key")
	}

	password := parts[2]
	if password == "" {
		return nil, errs.Errorf(errs.Configuration, "secret.parse", "empty password")
	}
	for _, c := range password {
		if !strings.ContainsRune(Alphabet, c) {
			return nil, errs.Errorf(errs.Configuration, "secret.parse", "password character %q outside alphabet", c)
		}
	}

	return &Seed{KeyA: ka, KeyB: kb, Password: password}, nil
}

func (s *Seed) String() string {
	return strings.Join([]string{
		base64.StdEncoding.EncodeToString(s.KeyA),
		base64.StdEncoding.EncodeToString(s.KeyB),
		s.Password,
	}, Delimiter)
}

// GenerateSeed creates a random seed with 64-byte keys and a password of n symbols.
func GenerateSeed(n int) (*Seed, error) {
	ka := make([]byte, 64)
	kb := make([]byte, 64)
	if _, err := io.ReadFull(rand.Reader, ka); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(rand.Reader, kb); err != nil {
		return nil, err
	}

	idx := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, idx); err != nil {
		return nil, err
	}
	var sb strings.Builder
	for _, b := range idx {
		sb.WriteByte(Alphabet[int(b)%len(Alphabet)])
	}

	return &Seed{KeyA: ka, KeyB: kb, Password: sb.String()}, nil
}

// Codec encrypts and decrypts envelope payloads. It holds no derived key;
// keys are recomputed per call from the UTC minute.
type Codec struct {
	seed *Seed
	rand io.Reader
}

func New(seed *Seed) *Codec {
	return &Codec{seed: seed, rand: rand.Reader}
}

// Parse is ParseSeed followed by New.
func Parse(s string) (*Codec, error) {
	seed, err := ParseSeed(s)
	if err != nil {
		return nil, err
	}
	return New(seed), nil
}

// totpCode returns the decimal HMAC-SHA-512 TOTP value of key at t.
func totpCode(key []byte, t time.Time) (uint64, error) {
	code, err := totp.GenerateCodeCustom(base32.StdEncoding.EncodeToString(key), t, totp.ValidateOpts{
		Period:    keyPeriod,
		Digits:    keyDigits,
		Algorithm: otp.AlgorithmSHA512,
	})
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(code, 10, 64)
}

// renderBase renders n in base len(Alphabet), most significant symbol first.
func renderBase(n uint64) string {
	base := uint64(len(Alphabet))
	if n == 0 {
		return Alphabet[:1]
	}
	var out []byte
	for n > 0 {
		out = append(out, Alphabet[n%base])
		n /= base
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

func scramble(password, s string) string {
	out := make([]byte, len(password))
	for i := 0; i < len(password); i++ {
		c := strings.IndexByte(Alphabet, password[i])
		k := strings.IndexByte(Alphabet, s[i%len(s)])
		out[i] = Alphabet[(c+k)%len(Alphabet)]
	}
	return string(out)
}

// Key derives the AES-256 key for the minute containing t.
func (c *Codec) Key(t time.Time) ([32]byte, error) {
	t = t.UTC()
	ta, err := totpCode(c.seed.KeyA, t)
	if err != nil {
		return [32]byte{}, errs.E(errs.Configuration, "secret.key", err)
	}
	tb, err := totpCode(c.seed.KeyB, t)
	if err != nil {
		return [32]byte{}, errs.E(errs.Configuration, "secret.key", err)
	}

	return sha256.Sum256([]byte(scramble(c.seed.Password, renderBase(ta*tb)))), nil
}

// Encrypt returns IV || AES-256-CBC(PKCS#7(plain)) under the key for t.
func (c *Codec) Encrypt(plain []byte, t time.Time) ([]byte, error) {
	key, err := c.Key(t)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, errs.E(errs.Transport, "secret.encrypt", err)
	}

	padded := pad(plain, aes.BlockSize)
	out := make([]byte, aes.BlockSize+len(padded))
	iv := out[:aes.BlockSize]
	if _, err := io.ReadFull(c.rand, iv); err != nil {
		return nil, errs.E(errs.Transport, "secret.encrypt", err)
	}
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[aes.BlockSize:], padded)
	return out, nil
}

// Decrypt reverses Encrypt under the key for t.
func (c *Codec) Decrypt(data []byte, t time.Time) ([]byte, error) {
	if len(data) < 2*aes.BlockSize || len(data)%aes.BlockSize != 0 {
		return nil, errs.Errorf(errs.Transport, "secret.decrypt", "invalid ciphertext length %d", len(data))
	}
	key, err := c.Key(t)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, errs.E(errs.Transport, "secret.decrypt", err)
	}

	plain := make([]byte, len(data)-aes.BlockSize)
	cipher.NewCBCDecrypter(block, data[:aes.BlockSize]).CryptBlocks(plain, data[aes.BlockSize:])
	out, err := unpad(plain, aes.BlockSize)
	if err != nil {
		return nil, errs.E(errs.Transport, "secret.decrypt", err)
	}
	return out, nil
}

// EncodeRequest moves pathAndQuery under /secure/ and encrypts body when present.
func (c *Codec) EncodeRequest(pathAndQuery string, body []byte, t time.Time) (string, []byte, error) {
	enc, err := c.Encrypt([]byte(normalize(pathAndQuery)), t)
	if err != nil {
		return "", nil, err
	}
	path := securePath + base64.URLEncoding.EncodeToString(enc)

	if body == nil {
		return path, nil, nil
	}
	encBody, err := c.Encrypt(body, t)
	if err != nil {
		return "", nil, err
	}
	return path, []byte(base64.StdEncoding.EncodeToString(encBody)), nil
}

// DecodeRequest is the server side of EncodeRequest. It is used by tests and
// by tooling that stands in for the server.
func (c *Codec) DecodeRequest(path string, body []byte, t time.Time) (string, []byte, error) {
	if !strings.HasPrefix(path, securePath) {
		return "", nil, errs.Errorf(errs.Transport, "secret.decode", "path %q is not an envelope", path)
	}
	raw, err := base64.URLEncoding.DecodeString(strings.TrimPrefix(path, securePath))
	if err != nil {
		return "", nil, errs.E(errs.Transport, "secret.decode", err)
	}
	plainPath, err := c.Decrypt(raw, t)
	if err != nil {
		return "", nil, err
	}
	if len(body) == 0 {
		return string(plainPath), nil, nil
	}
	plainBody, err := c.DecodeResponse(body, t)
	if err != nil {
		return "", nil, err
	}
	return string(plainPath), plainBody, nil
}

// EncodeResponse encrypts a response body the way the server does.
func (c *Codec) EncodeResponse(body []byte, t time.Time) ([]byte, error) {
	enc, err := c.Encrypt(body, t)
	if err != nil {
		return nil, err
	}
	return []byte(base64.StdEncoding.EncodeToString(enc)), nil
}

// DecodeResponse base64-decodes and decrypts a response body.
func (c *Codec) DecodeResponse(body []byte, t time.Time) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace(body)))
	if err != nil {
		return nil, errs.E(errs.Transport, "secret.decode", err)
	}
	return c.Decrypt(raw, t)
}

func normalize(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if p != apiPrefix && !strings.HasPrefix(p, apiPrefix+"/") && !strings.HasPrefix(p, apiPrefix+"?") {
		p = apiPrefix + p
	}
	return p
}

func pad(b []byte, size int) []byte {
	n := size - len(b)%size
	out := make([]byte, len(b)+n)
	copy(out, b)
	for i := len(b); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

func unpad(b []byte, size int) ([]byte, error) {
	if len(b) == 0 || len(b)%size != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(b))
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size {
		return nil, fmt.Errorf("invalid padding")
	}
	for _, v := range b[len(b)-n:] {
		if int(v) != n {
			return nil, fmt.Errorf("invalid padding")
		}
	}
	return b[:len(b)-n], nil
}
