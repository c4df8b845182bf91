package categorizer

import "fjacquet/split-insights/internal/models"

// DefaultCategories returns the built-in ordered category list. No keyword is
// shared between two categories.
func DefaultCategories() []models.CategoryConfig {
	return []models.CategoryConfig{
		{
			Name: models.CategoryFoodDining,
			Keywords: []string{
				"restaurant", "dinner", "lunch", "breakfast", "brunch", "cafe", "coffee",
				"starbucks", "pizza", "sushi", "burger", "takeout", "take-out", "doordash",
				"uber eats", "ubereats", "grubhub", "deliveroo", "mcdonald", "subway", "kfc",
				"bakery", "drinks",
			},
		},
		{
			Name: models.CategoryGroceries,
			Keywords: []string{
				"grocery", "groceries", "supermarket", "walmart", "costco", "trader joe",
				"whole foods", "aldi", "lidl", "tesco", "safeway", "kroger", "migros",
				"coop", "carrefour",
			},
		},
		{
			Name: models.CategoryTransport,
			Keywords: []string{
				"uber", "lyft", "taxi", "gas station", "fuel", "petrol", "parking", "toll",
				"bus fare", "bus ticket", "train ticket", "railway", "amtrak", "metro",
				"transit", "sbb",
			},
		},
		{
			Name: models.CategoryShopping,
			Keywords: []string{
				"amazon", "ebay", "clothing", "clothes", "shoes", "electronics",
				"apple store", "ikea", "target", "zara", "h&m",
			},
		},
		{
			Name: models.CategoryEntertainment,
			Keywords: []string{
				"netflix", "spotify", "hulu", "disney+", "disney plus", "hbo", "cinema",
				"movie", "concert", "theater", "theatre", "game", "steam", "playstation",
				"xbox", "bowling", "museum",
			},
		},
		{
			Name: models.CategoryUtilities,
			Keywords: []string{
				"electricity", "water bill", "gas bill", "internet", "wifi", "phone bill",
				"mobile plan", "rent payment", "utilities", "insurance", "cable", "comcast",
				"verizon", "at&t",
			},
		},
		{
			Name: models.CategoryHealth,
			Keywords: []string{
				"gym", "fitness", "pharmacy", "doctor", "dentist", "hospital", "medical",
				"medicine", "yoga", "pilates", "clinic", "therapy", "personal training",
			},
		},
		{
			Name: models.CategoryTravel,
			Keywords: []string{
				"hotel", "airbnb", "flight", "airline", "airport", "booking.com", "expedia",
				"car rental", "hostel", "vacation", "trip", "resort",
			},
		},
		{
			Name: models.CategoryEducation,
			Keywords: []string{
				"tuition", "course", "school", "university", "college", "books",
				"textbook", "udemy", "coursera", "class fee",
			},
		},
	}
}
