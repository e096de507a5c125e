package domain

// DefaultReciterID is used when a reciter id is unknown to the static catalogue.
const DefaultReciterID = 7

// Reciter describes a recitation and where public hosts keep its files.
type Reciter struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Style string `json:"style"`

	// ChapterFolder is the folder of whole-chapter files on the public chapter host.
	ChapterFolder string `json:"-"`
	// VerseFolder is the folder of per-verse files on the public verse host.
	VerseFolder string `json:"-"`
	// Edition is the audio edition identifier on the public content API.
	Edition string `json:"-"`
}

var reciters = []Reciter{
	{
		ID: 1, Name: "Abdul Basit Abdul Samad", Style: "Murattal",
		ChapterFolder: "abdul_basit_murattal", VerseFolder: "Abdul_Basit_Murattal_192kbps",
		Edition: "ar.abdulbasitmurattal",
	},
	{
		ID: 2, Name: "Abdul Basit Abdul Samad", Style: "Mujawwad",
		ChapterFolder: "abdul_basit_mujawwad", VerseFolder: "Abdul_Basit_Mujawwad_128kbps",
		Edition: "ar.abdulbasitmujawwad",
	},
	{
		ID: 3, Name: "Abdur Rahman As-Sudais", Style: "Murattal",
		ChapterFolder: "abdurrahmaan_as-sudays", VerseFolder: "Abdurrahmaan_As-Sudais_192kbps",
		Edition: "ar.abdurrahmaansudais",
	},
	{
		ID: 4, Name: "Abu Bakr Ash-Shaatri", Style: "Murattal",
		ChapterFolder: "abu_bakr_ash-shaatree", VerseFolder: "Abu_Bakr_Ash-Shaatri_128kbps",
		Edition: "ar.shaatree",
	},
	{
		ID: 5, Name: "Hani Ar-Rifai", Style: "Murattal",
		ChapterFolder: "hani_ar_rifai", VerseFolder: "Hani_Rifai_192kbps",
		Edition: "ar.hanirifai",
	},
	{
		ID: 6, Name: "Khalil Al-Husary", Style: "Murattal",
		ChapterFolder: "khalil_al_husary", VerseFolder: "Khalil_Al-Husary_128kbps",
		Edition: "ar.husary",
	},
	{
		ID: 7, Name: "Mishari Rashid Alafasy", Style: "Murattal",
		ChapterFolder: "mishaari_raashid_al_3afaasee", VerseFolder: "Alafasy_128kbps",
		Edition: "ar.alafasy",
	},
	{
		ID: 8, Name: "Siddiq Al-Minshawi", Style: "Mujawwad",
		ChapterFolder: "sa3d_al-ghaamidi", VerseFolder: "Siddiq_al-Minshawi_mujawwad_128kbps",
		Edition: "ar.minshawimujawwad",
	},
	{
		ID: 9, Name: "Siddiq Al-Minshawi", Style: "Murattal",
		ChapterFolder: "sa3ood_ash-shuraym", VerseFolder: "Mohamed_Siddiq_al-Minshawi_Murattal_128kbps",
		Edition: "ar.minshawi",
	},
	{
		ID: 10, Name: "Saud Ash-Shuraim", Style: "Murattal",
		ChapterFolder: "mishaari_raashid_al_3afaasee", VerseFolder: "Saud_ash-Shuraym_128kbps",
		Edition: "ar.saoodshuraym",
	},
}

// Reciters returns the static reciter catalogue ordered by id.
func Reciters() []Reciter {
	out := make([]Reciter, len(reciters))
	copy(out, reciters)
	return out
}

// LookupReciter returns the catalogue entry for id.
func LookupReciter(id int) (Reciter, bool) {
	for _, reciter := range reciters {
		if reciter.ID == id {
			return reciter, true
		}
	}
	return Reciter{}, false
}

// ReciterOrDefault returns the catalogue entry for id, or the default reciter when unknown.
func ReciterOrDefault(id int) Reciter {
	if reciter, ok := LookupReciter(id); ok {
		return reciter
	}
	reciter, _ := LookupReciter(DefaultReciterID)
	return reciter
}
