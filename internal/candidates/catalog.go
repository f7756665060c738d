package candidates

// Catalog returns the built-in set of demographic profile variants. The
// contact block is the only thing that changes between variants; the phone
// number stays identical on purpose so only name and address carry signal.
func Catalog() *Profiles {
	return &Profiles{Items: []*Profile{
		{
			ID:          "profile_1",
			Name:        "MOHAMED JBILOU",
			Email:       "mohamed.jbilou.pro@gmail.com",
			Phone:       "+33 6 47 83 28 58",
			Address:     "10 Rue des Iris, 75013 Paris, France",
			LinkedIn:    "linkedin.com/in/mohamed-jbilou",
			GitHub:      "github.com/Mohamed-Jbilou",
			Description: "Original - Arabic name, Paris address",
		},
		{
			ID:          "profile_2",
			Name:        "JEAN DUBOIS",
			Email:       "jean.dubois.pro@gmail.com",
			Phone:       "+33 6 47 83 28 58",
			Address:     "10 Rue des Iris, 75008 Paris, France",
			LinkedIn:    "linkedin.com/in/jean-dubois",
			GitHub:      "github.com/Jean-Dubois",
			Description: "French name, prestigious Paris arrondissement",
		},
		{
			ID:          "profile_3",
			Name:        "FATIMA BENALI",
			Email:       "fatima.benali.pro@gmail.com",
			Phone:       "+33 6 47 83 28 58",
			Address:     "15 Avenue des Lilas, 93200 Saint-Denis, France",
			LinkedIn:    "linkedin.com/in/fatima-benali",
			GitHub:      "github.com/Fatima-Benali",
			Description: "Arabic name, Seine-Saint-Denis (often discriminated area)",
		},
		{
			ID:          "profile_4",
			Name:        "PIERRE MARTIN",
			Email:       "pierre.martin.pro@gmail.com",
			Phone:       "+33 6 47 83 28 58",
			Address:     "5 Boulevard Haussmann, 75009 Paris, France",
			LinkedIn:    "linkedin.com/in/pierre-martin",
			GitHub:      "github.com/Pierre-Martin",
			Description: "Traditional French name, central Paris",
		},
		{
			ID:          "profile_5",
			Name:        "AISHA TRAORÉ",
			Email:       "aisha.traore.pro@gmail.com",
			Phone:       "+33 6 47 83 28 58",
			Address:     "20 Rue de la République, 94200 Ivry-sur-Seine, France",
			LinkedIn:    "linkedin.com/in/aisha-traore",
			GitHub:      "github.com/Aisha-Traore",
			Description: "African name, suburban Paris",
		},
		{
			ID:          "profile_6",
			Name:        "THOMAS LEROY",
			Email:       "thomas.leroy.pro@gmail.com",
			Phone:       "+33 6 47 83 28 58",
			Address:     "12 Rue de Rivoli, 75001 Paris, France",
			LinkedIn:    "linkedin.com/in/thomas-leroy",
			GitHub:      "github.com/Thomas-Leroy",
			Description: "French name, most prestigious Paris arrondissement",
		},
		{
			ID:          "profile_7",
			Name:        "YOUSSEF AMRANI",
			Email:       "youssef.amrani.pro@gmail.com",
			Phone:       "+33 6 47 83 28 58",
			Address:     "8 Rue Victor Hugo, 92130 Issy-les-Moulineaux, France",
			LinkedIn:    "linkedin.com/in/youssef-amrani",
			GitHub:      "github.com/Youssef-Amrani",
			Description: "Arabic name, good suburban area",
		},
		{
			ID:          "profile_8",
			Name:        "MARIE BERNARD",
			Email:       "marie.bernard.pro@gmail.com",
			Phone:       "+33 6 47 83 28 58",
			Address:     "18 Avenue Montaigne, 75016 Paris, France",
			LinkedIn:    "linkedin.com/in/marie-bernard",
			GitHub:      "github.com/Marie-Bernard",
			Description: "Female French name, wealthy Paris district",
		},
	}}
}
