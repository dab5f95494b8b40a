package api

import (
	"context"
)

// GetChatHistory returns the messages start..end (inclusive). Both bounds must
// be given together; nil bounds return the whole history.
func (c *Client) GetChatHistory(ctx context.Context, padID string, start, end *int) ([]ChatMessageData, error) {
	params := Params{"padID": padID}.SetOptionalInt("start", start).SetOptionalInt("end", end)
	var resp ChatHistoryResponse
	if err := c.call(ctx, OpGetChatHistory, params, &resp); err != nil {
		return nil, err
	}
	return nonNil(resp.Messages), nil
}

// GetChatHead returns the index of the newest message, -1 for an empty chat.
func (c *Client) GetChatHead(ctx context.Context, padID string) (int, error) {
	var resp ChatHeadResponse
	if err := c.call(ctx, OpGetChatHead, Params{"padID": padID}, &resp); err != nil {
		return 0, err
	}
	return resp.ChatHead, nil
}

// AppendChatMessage posts text as authorID. timeMillis is milliseconds since
// the epoch; the server uses its own clock when it is nil.
func (c *Client) AppendChatMessage(ctx context.Context, padID, text, authorID string, timeMillis *int64) error {
	params := Params{"padID": padID, "text": text, "authorID": authorID}.SetOptionalInt64("time", timeMillis)
	return c.call(ctx, OpAppendChatMessage, params, nil)
}
