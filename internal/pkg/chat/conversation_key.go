package chat

import (
	"errors"
)

// ErrInvalidParticipants 参与者为空或相同
var ErrInvalidParticipants = errors.New("会话标识无效")

// ConversationKey 生成单聊会话的规范标识
// 两端 UID 按字典序排序后用下划线拼接，对参与者顺序对称
func ConversationKey(a, b string) (string, error) {
	if a == "" || b == "" || a == b {
		return "", ErrInvalidParticipants
	}
	if a < b {
		return a + "_" + b, nil
	}
	return b + "_" + a, nil
}
