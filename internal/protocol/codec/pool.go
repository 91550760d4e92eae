package codec

import (
	"encoding/json"
	"sync"

	"github.com/palemoky/dice-party/internal/protocol"
)

// Message pool for reducing GC pressure on the server read path

var messagePool = sync.Pool{
	New: func() any {
		return &protocol.Message{}
	},
}

// GetMessage retrieves a Message from the pool
func GetMessage() *protocol.Message {
	return messagePool.Get().(*protocol.Message)
}

// PutMessage returns a Message to the pool
// The message fields are reset to prevent memory leaks
func PutMessage(msg *protocol.Message) {
	if msg == nil {
		return
	}
	// Reset fields to avoid holding references
	msg.Type = ""
	msg.Payload = nil
	messagePool.Put(msg)
}

// Decode 从 JSON 字节解码消息（池化版本）
// 注意: 使用完毕后应调用 PutMessage 归还对象到池
func Decode(data []byte) (*protocol.Message, error) {
	msg := GetMessage()
	if err := json.Unmarshal(data, msg); err != nil {
		PutMessage(msg)
		return nil, err
	}
	return msg, nil
}
