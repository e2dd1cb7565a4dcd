// ABOUTME: Built-in source seed used when no sources file is configured
// ABOUTME: Risky domestic feeds start inactive until verified

package sources

import "kenyanow-api/core/domain"

func defaultSources() []domain.Source {
	return []domain.Source{
		{
			ID:       "standard",
			Label:    "Standard",
			URL:      "https://www.standardmedia.co.ke/rss/headlines.php",
			Active:   true,
			Feed:     domain.FeedKenya,
			Domestic: true,
		},
		{
			ID:       "capital",
			Label:    "Capital FM",
			URL:      "https://www.capitalfm.co.ke/news/feed/",
			Active:   true,
			Feed:     domain.FeedKenya,
			Domestic: true,
		},
		{
			ID:       "kbc",
			Label:    "KBC",
			URL:      "https://www.kbc.co.ke/feed/",
			Active:   true,
			Feed:     domain.FeedKenya,
			Domestic: true,
		},
		{
			ID:       "citizen",
			Label:    "Citizen TV",
			URL:      "https://citizen.digital/rss",
			Active:   false,
			Feed:     domain.FeedKenya,
			Domestic: true,
		},
		{
			ID:       "people",
			Label:    "People Daily",
			URL:      "https://www.pd.co.ke/feed/",
			Active:   true,
			Feed:     domain.FeedKenya,
			Domestic: true,
		},
		{
			ID:       "nation",
			Label:    "Nation",
			URL:      "https://nation.africa/kenya/rss.xml",
			Active:   true,
			Feed:     domain.FeedKenya,
			Domestic: true,
		},
		{
			ID:       "star",
			Label:    "The Star",
			URL:      "https://www.the-star.co.ke/rss/",
			Active:   false,
			Feed:     domain.FeedKenya,
			Domestic: true,
		},
		{
			ID:       "kenyans",
			Label:    "Kenyans.co.ke",
			URL:      "https://www.kenyans.co.ke/rss",
			Active:   false,
			Feed:     domain.FeedKenya,
			Domestic: true,
		},
		{
			ID:       "tuko",
			Label:    "Tuko",
			URL:      "https://www.tuko.co.ke/rss",
			Active:   false,
			Feed:     domain.FeedKenya,
			Domestic: true,
		},
		{
			ID:     "reuters",
			Label:  "Reuters",
			URL:    "https://feeds.reuters.com/reuters/topNews",
			Active: true,
			Feed:   domain.FeedGlobal,
		},
		{
			ID:     "aljazeera",
			Label:  "Al Jazeera",
			URL:    "https://www.aljazeera.com/xml/rss/all.xml",
			Active: true,
			Feed:   domain.FeedGlobal,
		},
		{
			ID:     "bbc",
			Label:  "BBC World",
			URL:    "http://feeds.bbci.co.uk/news/world/rss.xml",
			Active: true,
			Feed:   domain.FeedGlobal,
		},
		{
			ID:     "cnn",
			Label:  "CNN",
			URL:    "http://rss.cnn.com/rss/edition.rss",
			Active: true,
			Feed:   domain.FeedGlobal,
		},
	}
}
