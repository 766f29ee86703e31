package catalog

var business = BusinessInfo{
	Name:        "Food Punch Karachi",
	WhatsApp:    "+923312721804",
	Foodpanda:   "https://www.foodpanda.pk/restaurant/fpk/food-punch-karachi",
	Tagline:     "Authenticity in Every Punch!",
	Description: "Karachi's premier home-based food delivery, specializing in traditional Memoni Khawsa and Singaporean Rice.",
	LogoURL:     "https://raw.githubusercontent.com/anas-dev725/Food-Punch-Karachi/7f6f6282c38aae6d9ca3a1d19446175e53f91610/food%20punch.jpg",
}

var signatureIDs = []string{"khawsa-1", "singaporean-1", "kachri-qeema-1"}

var menuItems = []Item{
	{
		ID:          "khawsa-1",
		Name:        "Special Chicken Khawsa",
		Description: "Loaded with tender chicken, rich coconut curry, bold spices, and crunchy toppings. Pure Karachi-style satisfaction in every bite.",
		Price:       850,
		Category:    CategorySignature,
		Image:       "https://images.unsplash.com/photo-1612929633738-8fe44f7ec841?auto=format&fit=crop&q=80&w=800",
		Tag:         "Famous",
	},
	{
		ID:          "singaporean-1",
		Name:        "Singaporean Rice",
		Description: "Layers of premium rice, noodles, spicy chicken, and our signature mayo-garlic sauce topping. A crowd favorite.",
		Price:       750,
		Category:    CategorySignature,
		Image:       "https://images.unsplash.com/photo-1603133872878-684f1084263d?auto=format&fit=crop&q=80&w=800",
		Tag:         "Signature",
	},
	{
		ID:          "kachri-qeema-1",
		Name:        "Kachri Qeema",
		Description: "A perfect blend of spices and tender meat that melts in your mouth. A signature delicacy of Food Punch.",
		Price:       950,
		Category:    CategorySignature,
		Image:       "https://images.unsplash.com/photo-1596797038530-2c107229654b?auto=format&fit=crop&q=80&w=800",
		Tag:         "Signature Dish",
	},
	{
		ID:          "chicken-makhni-monday",
		Name:        "Chicken Makhni with 2 Rotis",
		Description: "Start your week with a creamy delight! Rich and flavorful Chicken Makhni served with soft, fresh rotis.",
		Price:       700,
		Category:    CategoryWeeklySpecials,
		Image:       "https://images.unsplash.com/photo-1603894584373-5ac82b2ae398?auto=format&fit=crop&q=80&w=800",
		Tag:         "Monday Special",
	},
	{
		ID:          "curry-combo-wednesday",
		Name:        "Curry Pakora & Memoni Khichri",
		Description: "The perfect comfort food duo for a Wholesome Wednesday. Traditional taste!",
		Price:       550,
		Category:    CategoryWeeklySpecials,
		Image:       "https://images.unsplash.com/photo-1565557623262-b51c2513a641?auto=format&fit=crop&q=80&w=800",
		Tag:         "Wednesday Special",
	},
	{
		ID:          "green-pulao-friday",
		Name:        "Green Chicken Pulao & Raita",
		Description: "Fragrant pulao made with fresh green herbs and succulent chicken. Served with cooling mint raita.",
		Price:       750,
		Category:    CategoryWeeklySpecials,
		Image:       "https://images.unsplash.com/photo-1633945274405-b6c8069047b0?auto=format&fit=crop&q=80&w=800",
		Tag:         "Friday Special",
	},
	{
		ID:          "daigi-biryani-friday",
		Name:        "Daigi Chicken Biryani",
		Description: "Perfectly spiced and packed with tender chicken, this biryani will make your taste buds dance.",
		Price:       800,
		Category:    CategoryWeeklySpecials,
		Image:       "https://images.unsplash.com/photo-1563379091339-03b21bc4a4f8?auto=format&fit=crop&q=80&w=800",
		Tag:         "Friday Special",
	},
	{
		ID:          "shami-kebab",
		Name:        "Beef Shami Kebab (Dozen)",
		Description: "Home-made beef shami kebabs prepared with fresh spices. Frozen and ready to fry.",
		Price:       1200,
		Category:    CategoryPopular,
		Image:       "https://images.unsplash.com/photo-1599487488170-d11ec9c172f0?auto=format&fit=crop&q=80&w=800",
	},
	{
		ID:          "fried-onions-delight",
		Name:        "Fried Onions Delight (500g)",
		Description: "Elevate your dishes with this essential topping, adding a burst of flavor and crunch.",
		Price:       550,
		Category:    CategoryPopular,
		Image:       "https://images.unsplash.com/photo-1619683548700-1c70258557d3?auto=format&fit=crop&q=80&w=800",
		Tag:         "Essentials",
	},
	{
		ID:          "frozen-fries-1kg",
		Name:        "Frozen French Fries (1kg)",
		Description: "Enjoy hot, crunchy fries anytime straight from your freezer to your plate!",
		Price:       700,
		Category:    CategoryAppetizers,
		Image:       "https://images.unsplash.com/photo-1573016608438-301f642afb79?auto=format&fit=crop&q=80&w=800",
	},
	{
		ID:          "spring-rolls",
		Name:        "Veggie Spring Rolls (12pc)",
		Description: "Crispy, hand-rolled appetizers with fresh garden vegetables and mild spices.",
		Price:       450,
		Category:    CategoryAppetizers,
		Image:       "https://images.unsplash.com/photo-1544025162-d76694265947?auto=format&fit=crop&q=80&w=800",
	},
}

var reviews = []Review{
	{ID: "r1", Name: "Zainab Ahmed", Text: "The Khawsa took me back to my grandmother's house. Authentic and spicy!", Rating: 5},
	{ID: "r2", Name: "Omar Malik", Text: "Best Singaporean rice in Karachi. The sauce is addictive.", Rating: 5},
	{ID: "r3", Name: "Sara Khan", Text: "Hygiene is clearly a priority. Everything was packaged so well.", Rating: 5},
	{ID: "r4", Name: "Mustafa Jalal", Text: "Ordered the Monday Special. The Makhni was incredibly creamy and fresh.", Rating: 5},
}

var cateringServices = []CateringService{
	{
		ID:          "bulk",
		Title:       "Bulk Orders",
		Description: "Family gatherings or religious events? Order our famous Khawsa or Biryani by the Daig.",
		Icon:        "Package",
	},
	{
		ID:          "corporate",
		Title:       "Corporate Events",
		Description: "Premium lunch boxes and executive catering for office meetings and seminars.",
		Icon:        "Briefcase",
	},
	{
		ID:          "live-station",
		Title:       "Live Stations",
		Description: "Add charm to your parties with our live Kachri Qeema or Fry Kebab stations.",
		Icon:        "Flame",
	},
	{
		ID:          "hi-tea",
		Title:       "Hi-Tea Platters",
		Description: "Assorted finger foods including Shami Kebabs, Spring Rolls, and Sandwiches.",
		Icon:        "Coffee",
	},
}
