package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrNoProductSecret 服务端未配置 product secret
var ErrNoProductSecret = errors.New("product secret is not configured")

const productKeyCost = 10

// ProductKeyer 派生并校验特权注册用的 product key。
// 输入先做 sha256，避免 email 过长时超出 bcrypt 的 72 字节上限。
type ProductKeyer struct {
	Secret string
}

func (p ProductKeyer) material(email, userType string) []byte {
	sum := sha256.Sum256([]byte(email + "-" + userType + "-" + p.Secret))
	return []byte(hex.EncodeToString(sum[:]))
}

func (p ProductKeyer) Generate(email, userType string) (string, error) {
	if p.Secret == "" {
		return "", ErrNoProductSecret
	}
	b, err := bcrypt.GenerateFromPassword(p.material(email, userType), productKeyCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify 返回 (false, nil) 表示 key 不匹配
func (p ProductKeyer) Verify(email, userType, key string) (bool, error) {
	if p.Secret == "" {
		return false, ErrNoProductSecret
	}
	// hash 格式非法（被截断、版本不对）同样按不匹配处理
	err := bcrypt.CompareHashAndPassword([]byte(key), p.material(email, userType))
	return err == nil, nil
}
