package app

import (
	"net/url"

	audioHTTP "github.com/allisson/quran-gateway/internal/audio/http"
	audioService "github.com/allisson/quran-gateway/internal/audio/service"
	contentService "github.com/allisson/quran-gateway/internal/content/service"
)

// AudioRelay returns the audio relay. Its HTTP client has no overall timeout;
// the relay bounds only the wait for response headers.
func (c *Container) AudioRelay() *audioService.Relay {
	c.audioRelayInit.Do(func() {
		c.audioRelay = audioService.NewRelay(
			audioService.RelayConfig{
				Timeout:          c.config.AudioRelayTimeout,
				PrimaryHost:      c.config.AudioRelayPrimaryHost,
				AlternateBaseURL: c.config.AudioRelayAlternateBaseURL,
				CacheMaxAge:      c.config.AudioRelayCacheMaxAge,
				AllowedHosts:     c.relayAllowedHosts(),
			},
			contentService.NewHTTPClient(0),
			c.Logger(),
		)
	})
	return c.audioRelay
}

// relayAllowedHosts extends the configured allowlist with every audio host the gateway itself
// hands out URLs for. An empty configured list stays empty, allowing any host.
func (c *Container) relayAllowedHosts() []string {
	if len(c.config.AudioRelayAllowedHosts) == 0 {
		return nil
	}

	hosts := append([]string{c.config.AudioRelayPrimaryHost}, c.config.AudioRelayAllowedHosts...)
	for _, raw := range []string{
		c.config.ChapterAudioBaseURL,
		c.config.VerseAudioBaseURL,
		c.config.PublicChapterAudioBaseURL,
		c.config.PublicVerseAudioBaseURL,
		c.config.AudioRelayAlternateBaseURL,
	} {
		if u, err := url.Parse(raw); err == nil && u.Hostname() != "" {
			hosts = append(hosts, u.Hostname())
		}
	}
	return hosts
}

// AudioHandler returns the HTTP handler for the audio relay.
func (c *Container) AudioHandler() *audioHTTP.AudioHandler {
	c.audioHandlerInit.Do(func() {
		c.audioHandler = audioHTTP.NewAudioHandler(c.AudioRelay(), c.Logger())
	})
	return c.audioHandler
}
