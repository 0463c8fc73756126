package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/avatar"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/repository"
)

// InfoLevel is how much of a profile a viewer gets to see.
type InfoLevel int

const (
	// InfoLevelBasic discloses the username only.
	InfoLevelBasic InfoLevel = iota
	// InfoLevelStandard adds bio, links, signature and title.
	InfoLevelStandard
	// InfoLevelFull adds preferences and birth date; owner and staff only.
	InfoLevelFull
)

// Access is the Visibility Gate's verdict: whether the profile may be viewed
// at all, and at what detail level. It has no side effects; it only selects
// which fields the caller may render.
type Access struct {
	Allowed bool
	Level   InfoLevel
}

// lastSeenWriteWindow throttles per-request last_seen writes.
const lastSeenWriteWindow = time.Minute

// ProfileService owns profile viewing (visibility-gated), editing with
// avatar processing, and the last-seen bookkeeping.
type ProfileService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	topicRepo   repository.TopicRepository
	postRepo    repository.PostRepository
	stateRepo   repository.StateRepository
	media       MediaStore
}

// MediaStore persists processed avatar files.
type MediaStore interface {
	// SaveAvatar writes the file under the given name; the name is unique
	// per upload so saves never overwrite another user's file.
	SaveAvatar(name string, data []byte) error
	// RemoveAvatar deletes a stored file. Missing files are not an error.
	RemoveAvatar(name string) error
}

func NewProfileService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, topicRepo repository.TopicRepository, postRepo repository.PostRepository, stateRepo repository.StateRepository, media MediaStore) *ProfileService {
	if userRepo == nil || profileRepo == nil || topicRepo == nil || postRepo == nil {
		panic("repositories cannot be nil for ProfileService")
	}
	return &ProfileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		topicRepo:   topicRepo,
		postRepo:    postRepo,
		stateRepo:   stateRepo,
		media:       media,
	}
}

// CheckVisibility decides admission and info level for a viewer against a
// profile. Admission: owner and staff always; public to everyone; members
// to any authenticated viewer. The info level is computed independently:
// full for owner/staff, standard for public profiles (any viewer) and for
// members profiles seen by authenticated viewers, basic otherwise.
func CheckVisibility(viewer Viewer, ownerID uint, visibility string) Access {
	isOwner := viewer.Authenticated && viewer.UserID == ownerID

	allowed := isOwner ||
		viewer.privileged() ||
		visibility == domain.VisibilityPublic ||
		(visibility == domain.VisibilityMembers && viewer.Authenticated)

	var level InfoLevel
	switch {
	case isOwner || viewer.privileged():
		level = InfoLevelFull
	case visibility == domain.VisibilityPublic:
		level = InfoLevelStandard
	case visibility == domain.VisibilityMembers && viewer.Authenticated:
		level = InfoLevelStandard
	default:
		level = InfoLevelBasic
	}

	return Access{Allowed: allowed, Level: level}
}

// ProfileView is a gated profile page: the profile, the disclosure level the
// caller must respect, and the owner's topics and posts.
type ProfileView struct {
	User    domain.User
	Profile domain.Profile
	Level   InfoLevel
	Topics  []domain.Topic
	Posts   []domain.Post
}

// View loads a profile by username, enforcing the visibility gate.
func (s *ProfileService) View(ctx context.Context, viewer Viewer, username string) (*ProfileView, error) {
	logCtx := logrus.WithFields(logrus.Fields{"viewer_id": viewer.UserID, "username": username})

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("Failed to find profile user")
		return nil, ErrInternalServer
	}

	profile, err := s.getOrCreateProfile(ctx, user.ID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to load profile")
		return nil, ErrInternalServer
	}

	access := CheckVisibility(viewer, user.ID, profile.ProfileVisibility)
	if !access.Allowed {
		logCtx.Warn("Profile view denied by visibility setting")
		return nil, ErrForbidden
	}

	topics, err := s.topicRepo.ListByAuthor(ctx, user.ID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to list profile topics")
		return nil, ErrInternalServer
	}
	posts, err := s.postRepo.ListByAuthor(ctx, user.ID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to list profile posts")
		return nil, ErrInternalServer
	}

	user.Password = ""
	return &ProfileView{
		User:    *user,
		Profile: *profile,
		Level:   access.Level,
		Topics:  topics,
		Posts:   posts,
	}, nil
}

// Own loads the viewer's own account and profile for the edit form.
func (s *ProfileService) Own(ctx context.Context, userID uint) (*domain.User, *domain.Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, ErrUserNotFound
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to load own account")
		return nil, nil, ErrInternalServer
	}
	profile, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to load own profile")
		return nil, nil, ErrInternalServer
	}
	user.Password = ""
	return user, profile, nil
}

// ProfileUpdate carries the validated form fields for a profile save.
// AvatarData is nil when no file was supplied, in which case the stored
// avatar is left unchanged.
type ProfileUpdate struct {
	Bio               string
	Location          string
	BirthDate         *time.Time
	Website           string
	Signature         string
	UserTitle         string
	Twitter           string
	GitHub            string
	LinkedIn          string
	Timezone          string
	ProfileVisibility string
	NotifyOnReply     bool
	ReceiveNewsletter bool

	AvatarFileName string
	AvatarData     []byte
}

// Update saves the profile, processing the avatar first when one was
// uploaded. Either the whole update succeeds with the processed avatar, or
// nothing is persisted: the new file is written before the row, and removed
// again if the row save fails.
func (s *ProfileService) Update(ctx context.Context, userID uint, input ProfileUpdate) (*domain.Profile, error) {
	logCtx := logrus.WithField("user_id", userID)

	profile, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to load profile for update")
		return nil, ErrInternalServer
	}

	switch input.ProfileVisibility {
	case domain.VisibilityPublic, domain.VisibilityMembers, domain.VisibilityHidden:
	default:
		return nil, NewValidationError("profile_visibility", "visibility must be public, members or hidden")
	}

	oldAvatar := profile.Avatar
	newAvatar := ""
	if len(input.AvatarData) > 0 {
		processed, err := avatar.Process(input.AvatarFileName, input.AvatarData)
		if err != nil {
			return nil, avatarValidationError(err)
		}
		if s.media == nil {
			logCtx.Error("Avatar uploaded but no media store configured")
			return nil, ErrInternalServer
		}
		newAvatar = uuid.NewString() + processed.Ext
		if err := s.media.SaveAvatar(newAvatar, processed.Data); err != nil {
			logCtx.WithError(err).Error("Failed to store processed avatar")
			return nil, ErrInternalServer
		}
		profile.Avatar = newAvatar
	}

	profile.Bio = input.Bio
	profile.Location = input.Location
	profile.BirthDate = input.BirthDate
	profile.Website = input.Website
	profile.Signature = input.Signature
	profile.UserTitle = input.UserTitle
	profile.Twitter = input.Twitter
	profile.GitHub = input.GitHub
	profile.LinkedIn = input.LinkedIn
	profile.Timezone = input.Timezone
	profile.ProfileVisibility = input.ProfileVisibility
	profile.NotifyOnReply = input.NotifyOnReply
	profile.ReceiveNewsletter = input.ReceiveNewsletter

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		if newAvatar != "" {
			if rmErr := s.media.RemoveAvatar(newAvatar); rmErr != nil {
				logCtx.WithError(rmErr).Warn("Failed to clean up avatar after save failure")
			}
		}
		logCtx.WithError(err).Error("Failed to save profile")
		return nil, ErrInternalServer
	}

	// Row saved: the superseded avatar file can go. Best effort only.
	if newAvatar != "" && oldAvatar != "" && s.media != nil {
		if err := s.media.RemoveAvatar(oldAvatar); err != nil {
			logCtx.WithError(err).Warn("Failed to remove superseded avatar file")
		}
	}

	logCtx.Info("Profile updated successfully")
	return profile, nil
}

// TouchLastSeen records activity for an authenticated user. Writes are
// throttled through Redis so repeated requests inside the window cost one
// SETNX instead of a row update each.
func (s *ProfileService) TouchLastSeen(ctx context.Context, userID uint) {
	if s.stateRepo != nil {
		ok, err := s.stateRepo.AllowLastSeenWrite(ctx, userID, lastSeenWriteWindow)
		if err != nil {
			logrus.WithError(err).Debug("Last-seen throttle check failed, writing anyway")
		} else if !ok {
			return
		}
	}
	if err := s.profileRepo.UpdateLastSeen(ctx, userID, time.Now()); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("Failed to update last_seen")
	}
}

// getOrCreateProfile returns the user's profile, creating it reactively for
// accounts that predate profile creation.
func (s *ProfileService) getOrCreateProfile(ctx context.Context, userID uint) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, err
	}

	fresh := &domain.Profile{
		UserID:            userID,
		Timezone:          "UTC",
		ProfileVisibility: domain.VisibilityPublic,
		NotifyOnReply:     true,
		ReceiveNewsletter: true,
	}
	if err := s.profileRepo.Save(ctx, fresh); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			// Concurrent creation; the row exists now.
			return s.profileRepo.FindByUserID(ctx, userID)
		}
		return nil, err
	}
	return fresh, nil
}

// avatarValidationError maps processor failures to field-level errors on
// the avatar field.
func avatarValidationError(err error) error {
	switch {
	case errors.Is(err, avatar.ErrFileTooLarge):
		return NewValidationError("avatar", "file too large (maximum 2 MiB)")
	case errors.Is(err, avatar.ErrUnsupportedType):
		return NewValidationError("avatar", "unsupported file type (use .jpg, .jpeg, .png or .gif)")
	case errors.Is(err, avatar.ErrTooSmall):
		return NewValidationError("avatar", "image too small (minimum 100x100 pixels)")
	case errors.Is(err, avatar.ErrDecodeFailed):
		return NewValidationError("avatar", "could not read the image file")
	default:
		return ErrInternalServer
	}
}
