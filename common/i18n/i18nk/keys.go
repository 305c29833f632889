// Package i18nk lists the message IDs of the embedded locales.
package i18nk

type Key string

const (
	EmbedVideoFallback Key = "embed.video_fallback"
	EmbedAudioFallback Key = "embed.audio_fallback"

	ItemDownloaded     Key = "item.downloaded"
	ItemSkipped        Key = "item.skipped"
	ItemFailed         Key = "item.failed"
	UnknownContentItem Key = "item.unknown"

	PostUnavailable     Key = "post.unavailable"
	PostArchived        Key = "post.archived"
	PostFailed          Key = "post.failed"
	CommentsUnavailable Key = "comments.unavailable"
	CommentsArchived    Key = "comments.archived"

	ArchiveStarted  Key = "archive.started"
	ArchiveFinished Key = "archive.finished"
	LinksRead       Key = "archive.links_read"
	NoDumpsGiven    Key = "archive.no_dumps"

	TablePost    Key = "table.post"
	TableFolder  Key = "table.folder"
	TableSuccess Key = "table.success"
	TableSkipped Key = "table.skipped"
	TableFailed  Key = "table.failed"
	TableError   Key = "table.error"

	ProgressFilesSaved Key = "progress.files_saved"
	ProgressLastFailed Key = "progress.last_failed"
	ProgressCancelHint Key = "progress.cancel_hint"

	Exiting Key = "app.exiting"
)
