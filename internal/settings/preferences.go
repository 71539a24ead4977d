package settings

import (
	"context"

	"github.com/kpauljoseph/lumen/internal/storage"
	"github.com/kpauljoseph/lumen/pkg/models"
)

const (
	KeyOnboardingComplete = "onboarding_complete"
	KeyUserName           = "user_name"
	KeyUserOccupation     = "user_occupation"
	KeyLifetimePages      = "lifetime_pages"
	KeyLifetimeDocs       = "lifetime_docs"
	KeyFirstScanTime      = "first_scan_time"
	KeyCompressionLevel   = "compression_level"
	KeyDestinationType    = "destination_type"
	KeySavedTheme         = "saved_theme"
)

const (
	DefaultUserName       = "User"
	DefaultUserOccupation = "Explorer"
)

type Profile struct {
	Name               string `json:"name"`
	Occupation         string `json:"occupation"`
	OnboardingComplete bool   `json:"onboarding_complete"`
}

// Preferences is the typed view over the settings table.
type Preferences struct {
	store *Store
	db    storage.DBTX
}

func NewPreferences(store *Store, db storage.DBTX) *Preferences {
	return &Preferences{store: store, db: db}
}

func (p *Preferences) Compression(ctx context.Context) (models.Tier, error) {
	raw, err := p.store.String(ctx, p.db, KeyCompressionLevel, string(models.TierMedium))
	if err != nil {
		return "", err
	}
	return models.ParseTier(raw), nil
}

func (p *Preferences) SetCompression(ctx context.Context, tier models.Tier) error {
	return p.store.SetString(ctx, p.db, KeyCompressionLevel, string(models.ParseTier(string(tier))))
}

func (p *Preferences) Destination(ctx context.Context) (models.Destination, error) {
	raw, err := p.store.String(ctx, p.db, KeyDestinationType, string(models.DestinationDownloads))
	if err != nil {
		return "", err
	}
	return models.ParseDestination(raw), nil
}

func (p *Preferences) SetDestination(ctx context.Context, dest models.Destination) error {
	return p.store.SetString(ctx, p.db, KeyDestinationType, string(models.ParseDestination(string(dest))))
}

func (p *Preferences) Theme(ctx context.Context) (models.Theme, error) {
	raw, err := p.store.String(ctx, p.db, KeySavedTheme, string(models.ThemeAutumn))
	if err != nil {
		return "", err
	}
	return models.ParseTheme(raw), nil
}

func (p *Preferences) SetTheme(ctx context.Context, theme models.Theme) error {
	return p.store.SetString(ctx, p.db, KeySavedTheme, string(models.ParseTheme(string(theme))))
}

func (p *Preferences) Profile(ctx context.Context) (Profile, error) {
	var (
		prof Profile
		err  error
	)
	if prof.Name, err = p.store.String(ctx, p.db, KeyUserName, DefaultUserName); err != nil {
		return Profile{}, err
	}
	if prof.Occupation, err = p.store.String(ctx, p.db, KeyUserOccupation, DefaultUserOccupation); err != nil {
		return Profile{}, err
	}
	if prof.OnboardingComplete, err = p.store.Bool(ctx, p.db, KeyOnboardingComplete, false); err != nil {
		return Profile{}, err
	}
	return prof, nil
}

// CompleteOnboarding stores the profile and flips the onboarding flag.
// Empty values keep the defaults.
func (p *Preferences) CompleteOnboarding(ctx context.Context, name, occupation string) error {
	if name == "" {
		name = DefaultUserName
	}
	if occupation == "" {
		occupation = DefaultUserOccupation
	}
	if err := p.store.SetString(ctx, p.db, KeyUserName, name); err != nil {
		return err
	}
	if err := p.store.SetString(ctx, p.db, KeyUserOccupation, occupation); err != nil {
		return err
	}
	return p.store.SetBool(ctx, p.db, KeyOnboardingComplete, true)
}
