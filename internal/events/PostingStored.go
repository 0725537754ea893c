package events

import "github.com/jobmapa/scraper/internal/entities"

var PostingStoredTopic = "PostingStoredEvent"

type PostingStored struct {
	Job     entities.JobPosting
	Created bool
}
