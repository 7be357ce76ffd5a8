package models

// SeedEvents returns the fixed starting catalog.
func SeedEvents() []Event {
	return []Event{
		{
			ID: 1, Title: "Music Concert", Category: CategoryMusic,
			Date: "2025-10-01", Time: "7:00 PM", Location: "Central Stadium",
			Image:       "https://images.unsplash.com/photo-1514525253161-7a46d19cd819?w=500&h=400&fit=crop",
			Description: "Experience live music from top artists. A night full of entertainment and amazing performances.",
			Price:       500,
		},
		{
			ID: 2, Title: "Art Workshop", Category: CategoryArt,
			Date: "2025-10-10", Time: "10:00 AM", Location: "Creative Hub",
			Image:       "https://images.unsplash.com/photo-1516975080664-ed2fc6a32937?w=500&h=400&fit=crop",
			Description: "Learn painting and sketching techniques from professional artists in an interactive workshop.",
			Price:       300,
		},
		{
			ID: 3, Title: "Tech Meetup", Category: CategoryTech,
			Date: "2025-11-05", Time: "6:00 PM", Location: "Innovation Park",
			Image:       "https://images.unsplash.com/photo-1552664730-d307ca884978?w=500&h=400&fit=crop",
			Description: "Connect with tech professionals and discuss the latest trends in technology and innovation.",
			Price:       200,
		},
		{
			ID: 4, Title: "Live DJ Night", Category: CategoryMusic,
			Date: "2025-10-15", Time: "9:00 PM", Location: "Nightclub XYZ",
			Image:       "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=500&h=400&fit=crop",
			Description: "Dance the night away with the best DJs spinning your favorite tracks.",
			Price:       400,
		},
		{
			ID: 5, Title: "Pottery Class", Category: CategoryArt,
			Date: "2025-10-20", Time: "2:00 PM", Location: "Art Studio",
			Image:       "https://images.unsplash.com/photo-1578500494198-246f612d03b3?w=500&h=400&fit=crop",
			Description: "Create beautiful pottery pieces under expert guidance in this hands-on workshop.",
			Price:       250,
		},
		{
			ID: 6, Title: "Web Development Bootcamp", Category: CategoryTech,
			Date: "2025-11-10", Time: "10:00 AM", Location: "Tech Hub",
			Image:       "https://images.unsplash.com/photo-1517694712202-14dd9538aa97?w=500&h=400&fit=crop",
			Description: "Comprehensive bootcamp covering HTML, CSS, JavaScript, and React frameworks.",
			Price:       800,
		},
	}
}

// SeedUsers returns the fixed starting user list.
func SeedUsers() []User {
	return []User{
		{ID: 1, Name: "John", Email: "john@example.com", Password: "123456", Role: RoleAdmin},
		{ID: 2, Name: "Jane", Email: "jane@example.com", Password: "123456", Role: RoleUser},
		{ID: 3, Name: "Alex", Email: "alex@example.com", Password: "123456", Role: RoleUser},
	}
}

// SeedReviews returns the single review used when no stored reviews exist.
func SeedReviews() []Review {
	return []Review{
		{ID: 1, EventID: 1, UserID: 2, UserName: "Jane", Rating: 5, Comment: "Amazing show!"},
	}
}
