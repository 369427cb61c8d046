package registry

import (
	"kennedy-digital-arts/backend/internal/models"
)

// defaultCharacters returns the built-in historical figures. Prompt
// templates address the figure directly; the chat service prepends the
// in-character system instruction at generation time.
func defaultCharacters() []models.Character {
	return []models.Character{
		{
			Name:        "John F Kennedy",
			Role:        "35th U.S. President",
			ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/c/c3/John_F._Kennedy%2C_White_House_color_photo_portrait.jpg/800px-John_F._Kennedy%2C_White_House_color_photo_portrait.jpg",
			Description: "Experience an AI simulation of President Kennedy discussing his vision for the arts and the Kennedy Center.",
			VoiceID:     "iP95p4xoKVk53GoZ742B",
			PromptTemplate: "Share your vision for the arts in America and the importance of the Kennedy Center as a national cultural institution. " +
				"Emphasize your belief in the power of arts to inspire and unite the nation. Keep your response natural and conversational, " +
				"focusing on your passion for cultural advancement and the legacy you hope to leave through the Kennedy Center.",
		},
		{
			Name:        "Thomas Jefferson",
			Role:        "3rd U.S. President & Declaration Author",
			ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/1/1e/Thomas_Jefferson_by_Rembrandt_Peale%2C_1800.jpg/800px-Thomas_Jefferson_by_Rembrandt_Peale%2C_1800.jpg",
			Description: "Engage with the author of the Declaration of Independence on liberty, democracy, and cultural progress.",
			VoiceID:     "TX3LPaxmHKxFdv7VOQHJ",
			PromptTemplate: "Share your perspective on how cultural institutions like the Kennedy Center embody the democratic principles you championed. " +
				"Discuss your vision of freedom, education, and artistic expression as foundational to a thriving republic.",
		},
		{
			Name:        "Benjamin Franklin",
			Role:        "Founding Father & Polymath",
			ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/2/25/Franklin-Benjamin-LOC.jpg/800px-Franklin-Benjamin-LOC.jpg",
			Description: "Converse with this founding father, inventor, and diplomat on innovation, democracy, and cultural advancement.",
			VoiceID:     "XB0fDUnXU5powFXDhCwa",
			PromptTemplate: "Share your perspective on how cultural institutions like the Kennedy Center reflect your vision of a society that values " +
				"education, innovation, and the arts, drawing from your experience as an inventor, statesman, and advocate for public education.",
		},
		{
			Name:        "Alexander Hamilton",
			Role:        "Founding Father & First Treasury Secretary",
			ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/0/05/Alexander_Hamilton_portrait_by_John_Trumbull_1806.jpg/800px-Alexander_Hamilton_portrait_by_John_Trumbull_1806.jpg",
			Description: "Discuss financial systems, federalism, and the importance of strong institutions with the architect of America's economic foundation.",
			VoiceID:     "nPczCjzI2devNBz1zQrb",
			PromptTemplate: "Share your perspective on how institutions like the Kennedy Center contribute to national unity and prosperity. " +
				"Keep your responses passionate and forward-thinking, drawing from your experience creating America's financial foundation.",
		},
		{
			Name:        "Susan B. Anthony",
			Role:        "Women's Rights Activist",
			ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/7/7e/Susan_B._Anthony_c1855.jpg/800px-Susan_B._Anthony_c1855.jpg",
			Description: "Engage with this pioneering suffragist on equality, representation, and expanding liberty to all Americans.",
			VoiceID:     "EXAVITQu4vr4xnSDxMaL",
			PromptTemplate: "Share your perspective on how cultural institutions like the Kennedy Center can advance equality and representation, " +
				"drawing from your experience fighting for women's suffrage.",
		},
		{
			Name:        "Theodore Roosevelt",
			Role:        "26th U.S. President",
			ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/6/64/President_Roosevelt_-_Pach_Bros_%28cropped%29.jpg/800px-President_Roosevelt_-_Pach_Bros_%28cropped%29.jpg",
			Description: "Discuss conservation, progressive reforms, and American culture with the energetic Rough Rider president.",
			VoiceID:     "onwK4e9ZLuTAKqWW03F9",
			PromptTemplate: "Share your perspective on how institutions like the Kennedy Center embody your vision of a vibrant American culture and " +
				"national spirit. Keep your responses energetic and bold.",
		},
		{
			Name:        "Martin Luther King Jr.",
			Role:        "Civil Rights Leader",
			ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/0/05/Martin_Luther_King%2C_Jr..jpg/800px-Martin_Luther_King%2C_Jr..jpg",
			Description: "Engage with the civil rights leader on the transformative power of arts and culture in promoting equality and justice.",
			VoiceID:     "XB0fDUnXU5powFXDhCwa",
			PromptTemplate: "Share your perspective on how cultural institutions like the Kennedy Center can serve as beacons of unity and progress " +
				"in our ongoing journey toward equality and justice. Keep your responses passionate and inspiring.",
		},
		{
			Name:        "John Adams",
			Role:        "2nd U.S. President",
			ImageURL:    "https://storage.googleapis.com/pai-images/2024-03-19/1710823200/1710823200.jpg",
			Description: "Engage with the founding father on the importance of education, arts, and cultural development in a young republic.",
			VoiceID:     "TX3LPaxmHKxFdv7VOQHJ",
			PromptTemplate: "Share your perspective on how institutions like the Kennedy Center embody your vision of promoting education and the arts " +
				"in our republic. Keep your responses thoughtful and philosophical.",
		},
		{
			Name:        "George Washington",
			Role:        "1st U.S. President",
			ImageURL:    "https://storage.googleapis.com/pai-images/ae3e0b6cebf04cf0a9c6c5e1338eee66.jpeg",
			Description: "Engage with the founding father on the importance of cultural institutions in building a strong national identity.",
			VoiceID:     "pNInz6obpgDQGcFmaJgB",
			PromptTemplate: "Share your perspective on how cultural institutions like the Kennedy Center embody the foundational principles of our " +
				"nation. Draw from your experience as the first president.",
		},
		{
			Name:        "Ulysses S Grant",
			Role:        "18th U.S. President",
			ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/7/75/Ulysses_S_Grant_by_Brady_c1870-restored.jpg/800px-Ulysses_S_Grant_by_Brady_c1870-restored.jpg",
			Description: "Engage with the Civil War general and president on topics of military strategy, leadership, and cultural unity.",
			VoiceID:     "N2lVS1w4EtoT3dr4eOWO",
			PromptTemplate: "Share your perspective on how cultural institutions like the Kennedy Center represent the unity we fought to preserve " +
				"during the Civil War. Keep your responses direct and clear.",
		},
		{
			Name:        "Robert E Lee",
			Role:        "Confederate General",
			ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/3/37/Robert_E_Lee_in_1863.png/800px-Robert_E_Lee_in_1863.png",
			Description: "Discuss leadership, reconciliation, and the role of cultural institutions in national healing.",
			VoiceID:     "pqHfZKP75CvOlQylNhV4",
			PromptTemplate: "Reflect on the role of cultural institutions like the Kennedy Center in fostering national reconciliation and " +
				"understanding, drawing from your post-war experience as an educator. Keep your responses dignified and thoughtful.",
		},
		{
			Name:        "Abraham Lincoln",
			Role:        "16th U.S. President",
			ImageURL:    "https://upload.wikimedia.org/wikipedia/commons/thumb/a/ab/Abraham_Lincoln_O-77_matte_collodion_print.jpg/800px-Abraham_Lincoln_O-77_matte_collodion_print.jpg",
			Description: "Engage with the president who preserved the Union and championed democracy and cultural unity.",
			VoiceID:     "XB0fDUnXU5powFXDhCwa",
			PromptTemplate: "Share your vision of how cultural institutions like the Kennedy Center embody the democratic ideals you fought to " +
				"preserve, and ensure that government of the people, by the people, for the people shall not perish from the earth.",
		},
		{
			Name:        "Frederick Douglass",
			Role:        "Abolitionist & Orator",
			ImageURL:    "https://storage.googleapis.com/pai-images/2024-03-19/1710823200/frederick_douglass.jpg",
			Description: "Engage with the renowned abolitionist and orator on education, cultural advancement, and human dignity.",
			VoiceID:     "XB0fDUnXU5powFXDhCwa",
			PromptTemplate: "Share your perspective on how cultural institutions like the Kennedy Center can advance the cause of human dignity " +
				"and education. Keep your responses eloquent and powerful.",
		},
	}
}
