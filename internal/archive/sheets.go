package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SheetsClient appends archived shares through a Google Apps Script web app.
// The script owns the spreadsheet; this side posts one typed record per share
// so the script can dedupe on key and lay out columns itself.
type SheetsClient struct {
	url      string
	apiKey   string
	sheetID  string
	sheetTab string
	hc       *http.Client
}

func NewSheetsClient(webAppURL, apiKey, sheetID, sheetTab string) *SheetsClient {
	return &SheetsClient{
		url:      webAppURL,
		apiKey:   apiKey,
		sheetID:  sheetID,
		sheetTab: sheetTab,
		hc:       &http.Client{Timeout: 25 * time.Second},
	}
}

type sheetsPostRequest struct {
	APIKey    string            `json:"apiKey"`
	SheetID   string            `json:"sheetId"`
	SheetName string            `json:"sheetName"`
	Record    sheetsShareRecord `json:"record"`
}

type sheetsShareRecord struct {
	Key              string `json:"key"`
	ShareURL         string `json:"shareUrl"`
	RelicToken       string `json:"relicToken"`
	OtherToken       string `json:"otherToken"`
	RelicLevels      []int  `json:"relicLevels"`
	RelicTotal       int    `json:"relicTotal"`
	GuildBlessing    int    `json:"guildBlessing"`
	UnitLevelSumBuff string `json:"unitLevelSumBuff"`
	PetLevelSum      string `json:"petLevelSum"`
	ChannelID        string `json:"channelId"`
	MessageID        string `json:"messageId"`
	MessageURL       string `json:"messageUrl"`
	Author           string `json:"author"`
	MessageCreatedAt string `json:"messageCreatedAt"`
	FetchedAt        string `json:"fetchedAt"`
}

type sheetsPostResponse struct {
	OK       bool   `json:"ok"`
	Error    string `json:"error"`
	Appended int    `json:"appended"`
}

func (c *SheetsClient) AppendShare(ctx context.Context, sh Share, m Message) error {
	reqBody := sheetsPostRequest{
		APIKey:    c.apiKey,
		SheetID:   c.sheetID,
		SheetName: c.sheetTab,
		Record: sheetsShareRecord{
			Key:              sh.Key,
			ShareURL:         sh.URL,
			RelicToken:       sh.RelicToken,
			OtherToken:       sh.OtherToken,
			RelicLevels:      sh.Relics[:],
			RelicTotal:       sh.RelicTotal(),
			GuildBlessing:    sh.Buffs.GuildBlessing,
			UnitLevelSumBuff: sh.Buffs.UnitLevelSumBuff,
			PetLevelSum:      sh.Buffs.PetLevelSum.String(),
			ChannelID:        m.ChannelID,
			MessageID:        m.ID,
			MessageURL:       MessageURL(m.ChannelID, m.ID),
			Author:           m.Author,
			MessageCreatedAt: m.CreatedAt.Format(time.RFC3339),
			FetchedAt:        time.Now().Format(time.RFC3339),
		},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "LuckyDefense-tools share_archiver")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var pr sheetsPostResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return fmt.Errorf("apps script decode response: %w", err)
	}
	if !pr.OK {
		if pr.Error != "" {
			return fmt.Errorf("apps script error: %s", pr.Error)
		}
		return fmt.Errorf("apps script error")
	}
	return nil
}
