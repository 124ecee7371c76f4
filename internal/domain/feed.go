package domain

// PageMeta describes the position of a feed page within the full feed.
type PageMeta struct {
	Number     int  `json:"number"`
	Size       int  `json:"size"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// Feed is one page of posts plus pagination metadata.
type Feed struct {
	Posts []Post   `json:"posts"`
	Meta  PageMeta `json:"pagination"`
}

// GroupFeed is a group's feed page together with the group info.
type GroupFeed struct {
	Group Group `json:"group"`
	Feed
}

// ProfileFeed is an author's feed page together with the author info and
// whether the requesting viewer follows them. Following is always false
// for anonymous viewers.
type ProfileFeed struct {
	Author    Author `json:"author"`
	Following bool   `json:"following"`
	Feed
}
