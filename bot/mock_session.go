/* mock_session.go
 * Contains a recording DiscordSession used by the handler tests
 */

package bot

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// MockDiscordSession records every message the handlers send instead of posting it
type MockDiscordSession struct {
	SentMessages  []MockMessage
	ErrorToReturn error

	mu sync.Mutex
}

type MockMessage struct {
	ChannelID string
	Content   string
}

func (m *MockDiscordSession) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ErrorToReturn != nil {
		return nil, m.ErrorToReturn
	}
	m.SentMessages = append(m.SentMessages, MockMessage{ChannelID: channelID, Content: content})

	return &discordgo.Message{ID: "mock_message_id", ChannelID: channelID, Content: content}, nil
}

// GetLastMessage returns the most recent message, or a zero MockMessage if nothing was sent
func (m *MockDiscordSession) GetLastMessage() MockMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.SentMessages) == 0 {
		return MockMessage{}
	}
	return m.SentMessages[len(m.SentMessages)-1]
}

// MessageCount returns how many messages were sent so far
func (m *MockDiscordSession) MessageCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SentMessages)
}

func (m *MockDiscordSession) ClearMessages() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentMessages = nil
}

func NewMockDiscordSession() *MockDiscordSession {
	return &MockDiscordSession{SentMessages: make([]MockMessage, 0)}
}
