package domain

import (
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// Profile visibility settings. "hidden" profiles are visible only to the
// owner and staff.
const (
	VisibilityPublic  = "public"
	VisibilityMembers = "members"
	VisibilityHidden  = "hidden"
)

// DefaultAvatarURL is served when no avatar has been uploaded.
const DefaultAvatarURL = "/static/forum/images/default_avatar.png"

// Profile holds per-user forum settings and presentation data. Exactly one
// profile exists per user; it is created right after the user record and is
// only ever removed by the user cascade.
type Profile struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"uniqueIndex:idx_profile_user;not null"`
	Avatar    string `gorm:"type:varchar(191)"` // stored file name under the media dir, empty = default
	Bio       string `gorm:"type:text"`
	Location  string `gorm:"type:varchar(191)"`
	BirthDate *time.Time
	Website   string `gorm:"type:varchar(191)"`
	Signature string `gorm:"type:text"`
	UserTitle string `gorm:"type:varchar(191)"`
	Twitter   string `gorm:"type:varchar(191)"`
	GitHub    string `gorm:"type:varchar(191)"`
	LinkedIn  string `gorm:"type:varchar(191)"`
	Timezone  string `gorm:"type:varchar(64);not null;default:UTC"`

	ProfileVisibility string `gorm:"type:varchar(16);not null;default:public"`

	NotifyOnReply     bool `gorm:"not null;default:true"`
	ReceiveNewsletter bool `gorm:"not null;default:true"`

	LastSeen  *time.Time `gorm:"index"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
}

// signaturePolicy allows basic formatting markup and strips everything else,
// notably script tags.
var signaturePolicy = bluemonday.UGCPolicy()

// AvatarURL returns the public URL for the profile's avatar, falling back to
// the default image when none has been uploaded.
func (p *Profile) AvatarURL() string {
	if p.Avatar == "" {
		return DefaultAvatarURL
	}
	return "/media/avatars/" + p.Avatar
}

// SanitizedSignature returns the signature with unsafe HTML removed.
func (p *Profile) SanitizedSignature() string {
	if p.Signature == "" {
		return ""
	}
	return signaturePolicy.Sanitize(p.Signature)
}
