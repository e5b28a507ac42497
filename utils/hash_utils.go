package utils

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost 管理员密码的 bcrypt 成本
const PasswordCost = 10

// ErrEmptyPassword 规范化后密码为空
var ErrEmptyPassword = errors.New("password is empty")

// NormalizeEmail 管理员邮箱统一去除首尾空格并转为小写
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePassword 哈希与校验前统一去除首尾空格
func NormalizePassword(password string) string {
	return strings.TrimSpace(password)
}

// HashPassword 规范化后生成 bcrypt 哈希，空密码返回错误
func HashPassword(password string) (string, error) {
	password = NormalizePassword(password)
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash 用与 HashPassword 相同的规范化比较密码
func CheckPasswordHash(password, hash string) bool {
	password = NormalizePassword(password)
	if password == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
