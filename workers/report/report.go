package report

import (
	"fmt"

	"github.com/https-dhanesh/Classifieds-App-Base/db"
)

// Summary aggregates the platform figures for one daily report
type Summary struct {
	TotalAds   int64
	TotalViews int64
	TopAdTitle string
}

// Summarize computes the report figures from listings sorted by views,
// highest first.
func Summarize(listings []db.Listing) Summary {
	s := Summary{TotalAds: int64(len(listings))}
	for _, l := range listings {
		s.TotalViews += l.ViewsCount
	}
	if len(listings) > 0 {
		s.TopAdTitle = listings[0].Title
	} else {
		s.TopAdTitle = "N/A"
	}
	return s
}

// Subject is the report email subject line
const Subject = "Daily Classifieds Summary"

// Body renders the report email text
func Body(s Summary) string {
	return fmt.Sprintf(`Hello Admin!

Here is the status of the platform:
-----------------------------------
Total Active Ads: %d
Total User Views: %d

Top Ad: %s
`, s.TotalAds, s.TotalViews, s.TopAdTitle)
}
