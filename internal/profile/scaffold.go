package profile

// Scaffold returns the example profile written by a fresh project.
func Scaffold() *MasterProfile {
	return &MasterProfile{
		Basics: Basics{
			Name:    "John Doe",
			Email:   "john@example.com",
			Phone:   "+1 (555) 123-4567",
			Summary: "Experienced software engineer...",
			Location: &Location{
				City:        "San Francisco",
				CountryCode: "US",
			},
		},
		Work: []WorkExperience{{
			Name:       "Tech Corp",
			Position:   "Senior Engineer",
			StartDate:  "2020-01",
			Summary:    "Led team of 5...",
			Highlights: []string{"Improved performance by 50%"},
			TechStack:  []string{"Python", "AWS"},
		}},
		Education: []Education{{
			Institution: "University of Tech",
			Area:        "Computer Science",
			StudyType:   "Bachelor",
			StartDate:   "2015-09",
			EndDate:     "2019-06",
		}},
	}
}
