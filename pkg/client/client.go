// Package client provides the Paladins API client: typed entities, the
// lazy partial/full player model, and the TTL caches for reference data
// and server status.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"github.com/DevilXD/HiRezAPI/pkg/cache"
	"github.com/DevilXD/HiRezAPI/pkg/endpoint"
	"github.com/DevilXD/HiRezAPI/pkg/logging"
	"github.com/DevilXD/HiRezAPI/pkg/usage"
)

// Cache TTLs. Reference data changes with game patches; status changes
// whenever Hi-Rez has a bad day.
const (
	// DataCacheTTL is how long a champion/item reference bundle stays
	// fresh, per language.
	DataCacheTTL = 12 * time.Hour

	// StatusCacheTTL is how long a server status snapshot stays fresh.
	StatusCacheTTL = time.Minute
)

// Requester performs a named remote API method call and returns the raw
// response body. *endpoint.Endpoint implements it.
type Requester interface {
	Request(ctx context.Context, method string, args ...string) ([]byte, error)
}

// Config holds the client configuration.
type Config struct {
	// DevID is the developer ID (devId) issued by Hi-Rez.
	DevID string

	// AuthKey is the developer authentication key (authKey).
	AuthKey string

	// URL is the API base URL (default: endpoint.DefaultURL).
	URL string

	// HTTPClient performs the actual requests (optional).
	HTTPClient *http.Client

	// Usage tracks requests against the daily quota (optional).
	Usage usage.Tracker

	// Clock supplies the current time for cache staleness decisions
	// (default: time.Now). Injectable for deterministic tests.
	Clock func() time.Time
}

// DefaultConfig returns a default client configuration.
func DefaultConfig(devID, authKey string) Config {
	return Config{
		DevID:   devID,
		AuthKey: authKey,
		URL:     endpoint.DefaultURL,
	}
}

// Client is the main Paladins API client.
type Client struct {
	api      Requester
	endpoint *endpoint.Endpoint
	data     *cache.Keyed[Language, *ChampionInfo]
	status   *cache.Single[*ServerStatus]
	logger   zerolog.Logger
}

// New creates a Paladins API client.
func New(cfg Config) (*Client, error) {
	ep, err := endpoint.New(endpoint.Config{
		URL:        cfg.URL,
		DevID:      cfg.DevID,
		AuthKey:    cfg.AuthKey,
		HTTPClient: cfg.HTTPClient,
		Usage:      cfg.Usage,
		Clock:      cfg.Clock,
	})
	if err != nil {
		return nil, fmt.Errorf("create endpoint: %w", err)
	}

	c := &Client{
		api:      ep,
		endpoint: ep,
		logger:   logging.NewLogger("client"),
	}

	c.data, err = cache.New(cache.Config[Language, *ChampionInfo]{
		Name:  "data",
		TTL:   DataCacheTTL,
		Fetch: c.fetchChampionInfo,
		Clock: cfg.Clock,
	})
	if err != nil {
		return nil, fmt.Errorf("create data cache: %w", err)
	}

	c.status, err = cache.NewSingle(cache.SingleConfig[*ServerStatus]{
		Name:  "status",
		TTL:   StatusCacheTTL,
		Fetch: c.fetchServerStatus,
		Clock: cfg.Clock,
	})
	if err != nil {
		return nil, fmt.Errorf("create status cache: %w", err)
	}

	return c, nil
}

// SetRequester replaces the transport (for testing).
func (c *Client) SetRequester(r Requester) {
	c.api = r
}

// Close releases idle transport connections.
func (c *Client) Close() {
	if c.endpoint != nil {
		c.endpoint.Close()
	}
}

// Ping performs an unauthenticated liveness call against the API.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.api.Request(ctx, "ping")
	return err
}

// GetChampionInfo returns the champion/item reference bundle for the
// language, refreshing the cache entry first when it is absent, older
// than DataCacheTTL, or forceRefresh is set. A refresh uses up two
// requests; a failed refresh keeps serving the previous bundle.
//
// The boolean is false only when the language was never successfully
// fetched.
func (c *Client) GetChampionInfo(ctx context.Context, language Language, forceRefresh bool) (*ChampionInfo, bool) {
	return c.data.Get(ctx, language, forceRefresh)
}

// GetServerStatus returns the server status snapshot, refreshing it
// first when it is absent, older than StatusCacheTTL, or forceRefresh
// is set. A refresh uses up one request.
func (c *Client) GetServerStatus(ctx context.Context, forceRefresh bool) (*ServerStatus, bool) {
	return c.status.Get(ctx, forceRefresh)
}

// fetchChampionInfo is the data cache's fetch: the paired catalog
// requests for one language. The bundle is built only when both calls
// succeed with data - cards and talents reference the champion catalog,
// so a half-updated bundle would dangle.
func (c *Client) fetchChampionInfo(ctx context.Context, language Language) (*ChampionInfo, error) {
	langArg := strconv.Itoa(int(language))

	championsBody, err := c.api.Request(ctx, "getgods", langArg)
	if err != nil {
		return nil, fmt.Errorf("getgods: %w", err)
	}
	itemsBody, err := c.api.Request(ctx, "getitems", langArg)
	if err != nil {
		return nil, fmt.Errorf("getitems: %w", err)
	}

	var champions []championRecord
	if err := sonic.Unmarshal(championsBody, &champions); err != nil {
		return nil, fmt.Errorf("decode getgods response: %w", err)
	}
	var devices []deviceRecord
	if err := sonic.Unmarshal(itemsBody, &devices); err != nil {
		return nil, fmt.Errorf("decode getitems response: %w", err)
	}

	if len(champions) == 0 || len(devices) == 0 {
		return nil, fmt.Errorf("empty catalog response for language %s", language)
	}

	c.logger.Info().
		Stringer("language", language).
		Int("champions", len(champions)).
		Int("devices", len(devices)).
		Msg("Reference data refreshed")

	return newChampionInfo(language, champions, devices), nil
}

// fetchServerStatus is the status cache's fetch.
func (c *Client) fetchServerStatus(ctx context.Context) (*ServerStatus, error) {
	body, err := c.api.Request(ctx, "gethirezserverstatus")
	if err != nil {
		return nil, fmt.Errorf("gethirezserverstatus: %w", err)
	}

	var records []serverStatusRecord
	if err := sonic.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty status response")
	}

	return newServerStatus(records), nil
}

// WrapPlayerID wraps a known player ID into a PartialPlayer without any
// validation or network use. Methods of the result may find nothing if
// the ID is bogus.
func (c *Client) WrapPlayerID(playerID int) *PartialPlayer {
	return c.partialPlayer(playerID, "", PlatformUnknown)
}

// GetPlayer fetches a full player profile by player ID. Issues one
// request.
//
// Returns ErrNotFound when no such player exists and ErrPrivate when
// the profile is private.
func (c *Client) GetPlayer(ctx context.Context, playerID int) (*Player, error) {
	return c.getPlayer(ctx, strconv.Itoa(playerID))
}

// GetPlayerByName fetches a full player profile by player name. Only
// PC-class profiles (PC, Steam, Discord) resolve by name. Issues one
// request.
//
// Returns ErrNotFound when no such player exists and ErrPrivate when
// the profile is private.
func (c *Client) GetPlayerByName(ctx context.Context, name string) (*Player, error) {
	return c.getPlayer(ctx, name)
}

func (c *Client) getPlayer(ctx context.Context, arg string) (*Player, error) {
	body, err := c.api.Request(ctx, "getplayer", arg)
	if err != nil {
		return nil, err
	}

	var records []playerRecord
	if err := sonic.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode getplayer response: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	if msg := records[0].RetMsg; msg != "" {
		if strings.Contains(msg, "Privacy") {
			return nil, ErrPrivate
		}
		return nil, ErrNotFound
	}

	return newPlayer(c, records[0]), nil
}

// SearchPlayers fetches all players whose name matches exactly,
// case-insensitively. PlatformUnknown searches across all platforms;
// PC-class platforms search by name, console platforms by gamer tag.
// Issues one request.
func (c *Client) SearchPlayers(ctx context.Context, name string, platform Platform) ([]*PartialPlayer, error) {
	name = strings.ToLower(name)

	var (
		body []byte
		err  error
	)
	switch {
	case platform == PlatformUnknown:
		body, err = c.api.Request(ctx, "searchplayers", name)
	case platform.SearchesByName():
		body, err = c.api.Request(ctx, "getplayeridbyname", name)
	default:
		body, err = c.api.Request(ctx, "getplayeridsbygamertag", strconv.Itoa(int(platform)), name)
	}
	if err != nil {
		return nil, err
	}

	var records []partialPlayerRecord
	if err := sonic.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode player search response: %w", err)
	}
	if isEmptySignal(records) {
		return nil, nil
	}

	var players []*PartialPlayer
	for _, rec := range records {
		// The cross-platform search is fuzzy; narrow it to exact
		// (case-insensitive) matches.
		if platform == PlatformUnknown && !strings.EqualFold(rec.name(), name) {
			continue
		}
		players = append(players, c.partialPlayer(rec.id(), rec.name(), rec.platform()))
	}
	return players, nil
}

// GetPlayerFromPlatform fetches the player linked to a platform-specific
// account ID (SteamID64, Discord user ID, ...). Issues one request.
//
// Returns ErrNotFound when no player is linked to the ID.
func (c *Client) GetPlayerFromPlatform(ctx context.Context, platformID int, platform Platform) (*PartialPlayer, error) {
	body, err := c.api.Request(ctx, "getplayeridbyportaluserid",
		strconv.Itoa(int(platform)), strconv.Itoa(platformID))
	if err != nil {
		return nil, err
	}

	var records []partialPlayerRecord
	if err := sonic.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode platform lookup response: %w", err)
	}
	if len(records) == 0 || isEmptySignal(records) {
		return nil, ErrNotFound
	}

	rec := records[0]
	return c.partialPlayer(rec.id(), rec.name(), rec.platform()), nil
}

// GetMatch fetches a full match by match ID. Issues one request, plus
// the reference-data refresh when the bundle for the language is stale.
//
// Returns ErrNotFound when no such match exists.
func (c *Client) GetMatch(ctx context.Context, matchID int, language Language) (*Match, error) {
	info, _ := c.GetChampionInfo(ctx, language, false)

	body, err := c.api.Request(ctx, "getmatchdetails", strconv.Itoa(matchID))
	if err != nil {
		return nil, err
	}

	var records []matchDetailRecord
	if err := sonic.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode getmatchdetails response: %w", err)
	}
	if len(records) == 0 || isEmptySignal(records) {
		return nil, ErrNotFound
	}

	return newMatch(c, language, info, records), nil
}

// partialPlayer builds a client-bound player reference.
func (c *Client) partialPlayer(id int, name string, platform Platform) *PartialPlayer {
	return &PartialPlayer{
		client:   c,
		ID:       id,
		Name:     name,
		Platform: platform,
	}
}
