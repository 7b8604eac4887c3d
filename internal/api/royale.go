package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clanwatch/internal/config"
	"clanwatch/internal/domain"

	"github.com/valyala/fasthttp"
)

const baseURL = "https://api.clashroyale.com/v1"

// RoyaleClient talks to the Clash Royale REST API. It does plain single-shot
// reads; the staleness retry strategy lives in FreshFetcher.
type RoyaleClient struct {
	token   string
	clanTag string
	timeout time.Duration
	client  *fasthttp.Client

	// overridable for tests, returns the cache-bust query value
	nowMillis func() int64
}

func NewRoyaleClient(cfg *config.Config) *RoyaleClient {
	return &RoyaleClient{
		token:   cfg.ClashToken,
		clanTag: cfg.ClanTag,
		timeout: cfg.APITimeout,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         cfg.APITimeout,
			WriteTimeout:        cfg.APITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		nowMillis: func() int64 { return time.Now().UnixMilli() },
	}
}

// ClanTag is the configured own-clan tag, normalized (uppercase, no '#').
func (c *RoyaleClient) ClanTag() string { return c.clanTag }

func (c *RoyaleClient) clanPath(tag, suffix string) string {
	return fmt.Sprintf("%s/clans/%%23%s%s", baseURL, domain.NormalizeTag(tag), suffix)
}

func (c *RoyaleClient) Clan(ctx context.Context) (*Clan, error) {
	return doRequest[Clan](ctx, c, c.clanPath(c.clanTag, ""), false)
}

func (c *RoyaleClient) ClanByTag(ctx context.Context, tag string) (*Clan, error) {
	return doRequest[Clan](ctx, c, c.clanPath(tag, ""), false)
}

func (c *RoyaleClient) Members(ctx context.Context) (*MemberList, error) {
	return doRequest[MemberList](ctx, c, c.clanPath(c.clanTag, "/members"), false)
}

func (c *RoyaleClient) MembersOf(ctx context.Context, tag string) (*MemberList, error) {
	return doRequest[MemberList](ctx, c, c.clanPath(tag, "/members"), false)
}

// CurrentRiverRace reads the live war status. The endpoint sits behind a
// volatile edge cache, so callers normally ask for cache busting.
func (c *RoyaleClient) CurrentRiverRace(ctx context.Context, cacheBust bool) (*CurrentRiverRace, error) {
	return doRequest[CurrentRiverRace](ctx, c, c.clanPath(c.clanTag, "/currentriverrace"), cacheBust)
}

func (c *RoyaleClient) RiverRaceLog(ctx context.Context, limit int) (*RiverRaceLog, error) {
	return doRequest[RiverRaceLog](ctx, c, c.clanPath(c.clanTag, fmt.Sprintf("/riverracelog?limit=%d", limit)), true)
}

func (c *RoyaleClient) RiverRaceLogOf(ctx context.Context, tag string, limit int) (*RiverRaceLog, error) {
	return doRequest[RiverRaceLog](ctx, c, c.clanPath(tag, fmt.Sprintf("/riverracelog?limit=%d", limit)), true)
}

func doRequest[T any](ctx context.Context, client *RoyaleClient, url string, cacheBust bool) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	if cacheBust {
		sep := "?"
		if hasQuery(url) {
			sep = "&"
		}
		url = fmt.Sprintf("%s%sts=%d", url, sep, client.nowMillis())
	}

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", "Bearer "+client.token)
	req.Header.Set("Cache-Control", "no-store, max-age=0")
	req.Header.Set("Pragma", "no-cache")

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(client.timeout)
	}
	if err := client.client.DoDeadline(req, resp, deadline); err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) || errors.Is(err, fasthttp.ErrDialTimeout) {
			return nil, ErrUpstreamTimeout
		}
		return nil, &UpstreamError{Err: err}
	}

	if status := resp.StatusCode(); status < 200 || status > 299 {
		return nil, statusError(status)
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, &UpstreamError{Err: err}
	}
	return &result, nil
}

func hasQuery(url string) bool {
	for i := 0; i < len(url); i++ {
		if url[i] == '?' {
			return true
		}
	}
	return false
}

// Payload shapes of the consumed endpoints. Missing upstream fields decode to
// their zero value, which is exactly what the downstream heuristics assume.

type Clan struct {
	Tag              string   `json:"tag"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	ClanScore        int      `json:"clanScore"`
	RequiredTrophies int      `json:"requiredTrophies"`
	Members          int      `json:"members"`
	MemberList       []Member `json:"memberList"`
}

type Member struct {
	Tag               string `json:"tag"`
	Name              string `json:"name"`
	Role              string `json:"role"`
	LastSeen          string `json:"lastSeen"`
	Trophies          int    `json:"trophies"`
	ClanRank          int    `json:"clanRank"`
	Donations         int    `json:"donations"`
	DonationsReceived int    `json:"donationsReceived"`
}

type MemberList struct {
	Items []Member `json:"items"`
}

type CurrentRiverRace struct {
	State        string     `json:"state"`
	Clan         RaceClan   `json:"clan"`
	Clans        []RaceClan `json:"clans"`
	SectionIndex int        `json:"sectionIndex"`
	PeriodIndex  int        `json:"periodIndex"`
	PeriodType   string     `json:"periodType"`
}

type RaceClan struct {
	Tag          string            `json:"tag"`
	Name         string            `json:"name"`
	Fame         int               `json:"fame"`
	RepairPoints int               `json:"repairPoints"`
	PeriodPoints int               `json:"periodPoints"`
	FinishTime   string            `json:"finishTime"`
	Participants []RaceParticipant `json:"participants"`
}

type RaceParticipant struct {
	Tag            string `json:"tag"`
	Name           string `json:"name"`
	Fame           int    `json:"fame"`
	RepairPoints   int    `json:"repairPoints"`
	BoatAttacks    int    `json:"boatAttacks"`
	DecksUsed      int    `json:"decksUsed"`
	DecksUsedToday int    `json:"decksUsedToday"`
}

type RiverRaceLog struct {
	Items []RiverRaceLogEntry `json:"items"`
}

type RiverRaceLogEntry struct {
	SeasonID     int                 `json:"seasonId"`
	SectionIndex int                 `json:"sectionIndex"`
	CreatedDate  string              `json:"createdDate"`
	EndTime      string              `json:"endTime"`
	FinishedTime string              `json:"finishedTime"`
	UpdatedTime  string              `json:"updatedTime"`
	Standings    []RiverRaceStanding `json:"standings"`
}

type RiverRaceStanding struct {
	Rank         int      `json:"rank"`
	TrophyChange int      `json:"trophyChange"`
	Clan         RaceClan `json:"clan"`
}
