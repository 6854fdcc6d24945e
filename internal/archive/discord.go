package archive

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
)

type DiscordClient struct {
	s *discordgo.Session
}

type Message struct {
	ID        string
	ChannelID string
	Author    string
	Content   string
	CreatedAt time.Time
}

func NewDiscordClient(token string) (*DiscordClient, error) {
	// token should already have the proper prefix (e.g. "Bot ")
	s, err := discordgo.New(token)
	if err != nil {
		return nil, err
	}
	return &DiscordClient{s: s}, nil
}

func (c *DiscordClient) Close() error {
	return c.s.Close()
}

// FetchRecentMessages walks backwards from "now" using before=... until:
// - it reaches messageID <= stopAfterMessageID (if provided), OR
// - it reaches cutoffTime (if stopAfterMessageID empty).
// Returned slice is sorted oldest -> newest.
func (c *DiscordClient) FetchRecentMessages(ctx context.Context, channelID, stopAfterMessageID string, cutoffTime time.Time) ([]Message, string, error) {
	const pageSize = 100

	before := ""
	out := make([]Message, 0, 512)
	newestSeen := stopAfterMessageID
	stopAfterNum := parseSnowflake(stopAfterMessageID)

	lastLog := time.Now().Add(-time.Second) // allow first log immediately

	for {
		select {
		case <-ctx.Done():
			return nil, newestSeen, ctx.Err()
		default:
		}

		msgs, err := c.s.ChannelMessages(channelID, pageSize, before, "", "")
		if err != nil {
			return nil, newestSeen, fmt.Errorf("discord ChannelMessages channel=%s: %w", channelID, err)
		}
		if len(msgs) == 0 {
			break
		}

		// Discord returns newest -> oldest for before-pagination.
		for _, m := range msgs {
			created := m.Timestamp
			if created.IsZero() {
				created = time.Now()
			}

			mNum := parseSnowflake(m.ID)

			if stopAfterMessageID != "" {
				if mNum != 0 && stopAfterNum != 0 && mNum <= stopAfterNum {
					continue
				}
			} else {
				if created.Before(cutoffTime) {
					continue
				}
			}

			out = append(out, Message{
				ID:        m.ID,
				ChannelID: channelID,
				Author:    authorName(m.Author),
				Content:   m.Content,
				CreatedAt: created,
			})

			if newestSeen == "" {
				newestSeen = m.ID
			} else if mNum != 0 {
				newestNum := parseSnowflake(newestSeen)
				if newestNum == 0 || mNum > newestNum {
					newestSeen = m.ID
				}
			}
		}

		oldest := msgs[len(msgs)-1]
		before = oldest.ID

		if time.Since(lastLog) >= time.Second {
			fmt.Printf("Fetched %d messages so far\n", len(out))
			lastLog = time.Now()
		}

		oldestNum := parseSnowflake(oldest.ID)
		if stopAfterMessageID != "" && oldestNum != 0 && stopAfterNum != 0 && oldestNum <= stopAfterNum {
			break
		}
		if stopAfterMessageID == "" && !oldest.Timestamp.IsZero() && oldest.Timestamp.Before(cutoffTime) {
			break
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, newestSeen, nil
}

func parseSnowflake(id string) uint64 {
	if id == "" {
		return 0
	}
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func MessageURL(channelID, messageID string) string {
	return fmt.Sprintf("https://discord.com/channels/@me/%s/%s", channelID, messageID)
}

func authorName(u *discordgo.User) string {
	if u == nil {
		return ""
	}
	if u.GlobalName != "" {
		return u.GlobalName
	}
	if u.Username != "" {
		return u.Username
	}
	return u.ID
}
