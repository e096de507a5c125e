package app

import (
	"fmt"

	contentHTTP "github.com/allisson/quran-gateway/internal/content/http"
	contentService "github.com/allisson/quran-gateway/internal/content/service"
	contentUseCase "github.com/allisson/quran-gateway/internal/content/usecase"
)

// PrimaryClient returns the authenticated content API client.
func (c *Container) PrimaryClient() (*contentService.PrimaryClient, error) {
	var err error
	c.primaryClientInit.Do(func() {
		c.primaryClient, err = c.initPrimaryClient()
		if err != nil {
			c.initErrors["primaryClient"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["primaryClient"]; exists {
		return nil, storedErr
	}
	return c.primaryClient, nil
}

// FallbackClient returns the public content API client.
func (c *Container) FallbackClient() *contentService.FallbackClient {
	c.fallbackClientInit.Do(func() {
		c.fallbackClient = contentService.NewFallbackClient(
			c.config.FallbackAPIBaseURL,
			contentService.NewHTTPClient(c.config.UpstreamTimeout),
			c.Logger(),
		)
	})
	return c.fallbackClient
}

// AudioHostClient returns the client probing public audio hosts.
func (c *Container) AudioHostClient() *contentService.AudioHostClient {
	c.audioHostClientInit.Do(func() {
		c.audioHostClient = contentService.NewAudioHostClient(contentService.NewHTTPClient(c.config.UpstreamTimeout))
	})
	return c.audioHostClient
}

// URLGenerator returns the deterministic public audio URL generator.
func (c *Container) URLGenerator() *contentService.URLGenerator {
	c.urlGeneratorInit.Do(func() {
		c.urlGenerator = contentService.NewURLGenerator(
			c.config.PublicChapterAudioBaseURL,
			c.config.PublicVerseAudioBaseURL,
		)
	})
	return c.urlGenerator
}

// Resolver returns the content resolver, decorated with metrics.
func (c *Container) Resolver() (contentUseCase.Resolver, error) {
	var err error
	c.resolverInit.Do(func() {
		c.resolver, err = c.initResolver()
		if err != nil {
			c.initErrors["resolver"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["resolver"]; exists {
		return nil, storedErr
	}
	return c.resolver, nil
}

// ContentHandler returns the HTTP handler for content operations.
func (c *Container) ContentHandler() (*contentHTTP.ContentHandler, error) {
	var err error
	c.contentHandlerInit.Do(func() {
		c.contentHandler, err = c.initContentHandler()
		if err != nil {
			c.initErrors["contentHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["contentHandler"]; exists {
		return nil, storedErr
	}
	return c.contentHandler, nil
}

// initPrimaryClient creates the primary client sharing the container's token cache.
func (c *Container) initPrimaryClient() (*contentService.PrimaryClient, error) {
	tokens, err := c.TokenCache()
	if err != nil {
		return nil, fmt.Errorf("failed to get token cache for primary client: %w", err)
	}

	primaryConfig := contentService.PrimaryConfig{
		BaseURL:             c.config.QuranAPIBaseURL,
		ClientID:            c.config.QuranClientID,
		ChapterAudioBaseURL: c.config.ChapterAudioBaseURL,
		VerseAudioBaseURL:   c.config.VerseAudioBaseURL,
		PageSize:            c.config.UpstreamPageSize,
		MaxPages:            c.config.UpstreamMaxPages,
		AudioEnabled:        c.config.QuranPrimaryAudioEnabled,
	}

	return contentService.NewPrimaryClient(
		primaryConfig,
		tokens,
		contentService.NewHTTPClient(c.config.UpstreamTimeout),
		c.Logger(),
	), nil
}

// initResolver creates the resolver with all its dependencies.
func (c *Container) initResolver() (contentUseCase.Resolver, error) {
	tokens, err := c.TokenCache()
	if err != nil {
		return nil, fmt.Errorf("failed to get token cache for resolver: %w", err)
	}

	primary, err := c.PrimaryClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get primary client for resolver: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for resolver: %w", err)
	}

	resolverConfig := contentUseCase.ResolverConfig{
		ArabicEdition:          c.config.FallbackArabicEdition,
		DefaultTranslationID:   c.config.DefaultTranslationID,
		TranslationFallbackIDs: c.config.TranslationFallbackIDs,
		TranslationEditions:    c.config.TranslationEditions,
	}

	resolver := contentUseCase.NewResolver(
		resolverConfig,
		tokens,
		primary,
		c.FallbackClient(),
		c.AudioHostClient(),
		c.URLGenerator(),
		c.Logger(),
	)

	return contentUseCase.NewResolverWithMetrics(resolver, businessMetrics), nil
}

// initContentHandler creates the content HTTP handler.
func (c *Container) initContentHandler() (*contentHTTP.ContentHandler, error) {
	resolver, err := c.Resolver()
	if err != nil {
		return nil, fmt.Errorf("failed to get resolver for content handler: %w", err)
	}
	return contentHTTP.NewContentHandler(resolver, c.Logger()), nil
}
