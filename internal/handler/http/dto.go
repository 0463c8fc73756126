package http

import (
	"time"

	"github.com/MickTheLinuxGeek/ByteBoard/internal/domain"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/pagination"
	"github.com/MickTheLinuxGeek/ByteBoard/internal/service"
)

// PageView is the pagination block every listing response carries: the page
// numbers plus the elided page range for the pager widget.
type PageView struct {
	pagination.Page
	PageRange []string `json:"page_range"`
}

func pageView(page pagination.Page, elided []string) PageView {
	return PageView{Page: page, PageRange: elided}
}

type CategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type TopicView struct {
	ID        uint         `json:"id"`
	Subject   string       `json:"subject"`
	Author    string       `json:"author"`
	Category  *CategoryRef `json:"category,omitempty"`
	IsSticky  bool         `json:"is_sticky"`
	CreatedAt time.Time    `json:"created_at"`
}

func topicView(topic domain.Topic) TopicView {
	view := TopicView{
		ID:        topic.ID,
		Subject:   topic.Subject,
		Author:    topic.CreatedBy.Username,
		IsSticky:  topic.IsSticky,
		CreatedAt: topic.CreatedAt,
	}
	if topic.Category != nil {
		view.Category = &CategoryRef{
			ID:   topic.Category.ID,
			Name: topic.Category.Name,
			Slug: topic.Category.Slug,
		}
	}
	return view
}

func topicViews(topics []domain.Topic) []TopicView {
	views := make([]TopicView, 0, len(topics))
	for _, topic := range topics {
		views = append(views, topicView(topic))
	}
	return views
}

type PostView struct {
	ID        uint       `json:"id"`
	TopicID   uint       `json:"topic_id"`
	Message   string     `json:"message"`
	Author    string     `json:"author"`
	Tags      []string   `json:"tags"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func postView(post domain.Post) PostView {
	tags := make([]string, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tags = append(tags, tag.Name)
	}
	return PostView{
		ID:        post.ID,
		TopicID:   post.TopicID,
		Message:   post.Message,
		Author:    post.CreatedBy.Username,
		Tags:      tags,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

func postViews(posts []domain.Post) []PostView {
	views := make([]PostView, 0, len(posts))
	for _, post := range posts {
		views = append(views, postView(post))
	}
	return views
}

// ProfileView is the gated profile rendering. Fields beyond the username are
// only populated when the disclosure level admits them; the rest stay nil
// and drop out of the JSON.
type ProfileView struct {
	Username  string     `json:"username"`
	InfoLevel string     `json:"info_level"`
	AvatarURL *string    `json:"avatar_url,omitempty"`
	Bio       *string    `json:"bio,omitempty"`
	Location  *string    `json:"location,omitempty"`
	Website   *string    `json:"website,omitempty"`
	Signature *string    `json:"signature,omitempty"`
	UserTitle *string    `json:"user_title,omitempty"`
	Twitter   *string    `json:"twitter,omitempty"`
	GitHub    *string    `json:"github,omitempty"`
	LinkedIn  *string    `json:"linkedin,omitempty"`
	LastSeen  *time.Time `json:"last_seen,omitempty"`
	JoinedAt  *time.Time `json:"joined_at,omitempty"`

	// Full level only.
	Email             *string    `json:"email,omitempty"`
	BirthDate         *time.Time `json:"birth_date,omitempty"`
	Timezone          *string    `json:"timezone,omitempty"`
	ProfileVisibility *string    `json:"profile_visibility,omitempty"`
	NotifyOnReply     *bool      `json:"notify_on_reply,omitempty"`
	ReceiveNewsletter *bool      `json:"receive_newsletter,omitempty"`
}

func infoLevelName(level service.InfoLevel) string {
	switch level {
	case service.InfoLevelFull:
		return "full"
	case service.InfoLevelStandard:
		return "standard"
	default:
		return "basic"
	}
}

func profileView(user domain.User, profile domain.Profile, level service.InfoLevel) ProfileView {
	view := ProfileView{
		Username:  user.Username,
		InfoLevel: infoLevelName(level),
	}
	if level < service.InfoLevelStandard {
		return view
	}

	avatarURL := profile.AvatarURL()
	signature := profile.SanitizedSignature()
	joined := user.CreatedAt
	view.AvatarURL = &avatarURL
	view.Bio = &profile.Bio
	view.Location = &profile.Location
	view.Website = &profile.Website
	view.Signature = &signature
	view.UserTitle = &profile.UserTitle
	view.Twitter = &profile.Twitter
	view.GitHub = &profile.GitHub
	view.LinkedIn = &profile.LinkedIn
	view.LastSeen = profile.LastSeen
	view.JoinedAt = &joined

	if level < service.InfoLevelFull {
		return view
	}

	view.Email = &user.Email
	view.BirthDate = profile.BirthDate
	view.Timezone = &profile.Timezone
	view.ProfileVisibility = &profile.ProfileVisibility
	view.NotifyOnReply = &profile.NotifyOnReply
	view.ReceiveNewsletter = &profile.ReceiveNewsletter
	return view
}
