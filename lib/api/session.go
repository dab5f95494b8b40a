package api

import (
	"context"
	"time"
)

// ValidUntil returns the unix timestamp that lies the given number of
// minutes after now.
func ValidUntil(now time.Time, minutes int) int64 {
	return now.Unix() + int64(minutes)*60
}

// CreateSession lets authorID access the pads of groupID until validUntil (unix seconds).
func (c *Client) CreateSession(ctx context.Context, groupID, authorID string, validUntil int64) (string, error) {
	params := Params{"groupID": groupID, "authorID": authorID}.SetInt64("validUntil", validUntil)
	var resp SessionIDResponse
	if err := c.call(ctx, OpCreateSession, params, &resp); err != nil {
		return "", err
	}
	return resp.SessionID, nil
}

func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.call(ctx, OpDeleteSession, Params{"sessionID": sessionID}, nil)
}

func (c *Client) GetSessionInfo(ctx context.Context, sessionID string) (SessionInfo, error) {
	var info SessionInfo
	if err := c.call(ctx, OpGetSessionInfo, Params{"sessionID": sessionID}, &info); err != nil {
		return SessionInfo{}, err
	}
	return info, nil
}

func (c *Client) ListSessionsOfGroup(ctx context.Context, groupID string) (SessionInfos, error) {
	infos := SessionInfos{}
	if err := c.call(ctx, OpListSessionsOfGroup, Params{"groupID": groupID}, &infos); err != nil {
		return nil, err
	}
	return infos, nil
}

func (c *Client) ListSessionsOfAuthor(ctx context.Context, authorID string) (SessionInfos, error) {
	infos := SessionInfos{}
	if err := c.call(ctx, OpListSessionsOfAuthor, Params{"authorID": authorID}, &infos); err != nil {
		return nil, err
	}
	return infos, nil
}
