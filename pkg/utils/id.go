package utils

import "github.com/google/uuid"

func NewID() string { return uuid.NewString() }

// IsID 路径参数里的 id 必须是 uuid
func IsID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}
