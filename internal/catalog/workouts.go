package catalog

import "github.com/hhrukbfu-tech/treino-em-casa/internal/models"

var defaultWorkouts = []models.Workout{
	{
		ID:       1,
		Title:    "Workout A: Full Body",
		Duration: "15 min",
		Type:     "Full Body",
		Level:    models.LevelBeginner,
		Exercises: []models.Exercise{
			{
				ID:              1,
				Name:            "Squats",
				DurationSeconds: 45,
				Instructions:    "Keep your back straight and lower down to 90 degrees. Feet shoulder-width apart.",
				VideoURL:        "https://www.youtube.com/watch?v=aclHkVaku9U",
			},
			{
				ID:              2,
				Name:            "Push-Ups",
				DurationSeconds: 30,
				Instructions:    "Keep your body aligned and lower with control. Elbows at 45 degrees.",
				VideoURL:        "https://www.youtube.com/watch?v=IODxDxX7oi4",
			},
			{
				ID:              3,
				Name:            "Plank",
				DurationSeconds: 30,
				Instructions:    "Keep your core braced and your body straight as a board.",
				VideoURL:        "https://www.youtube.com/watch?v=ASdvN_XEl_c",
			},
		},
	},
	{
		ID:       2,
		Title:    "Workout B: HIIT",
		Duration: "20 min",
		Type:     "HIIT",
		Level:    models.LevelIntermediate,
		Exercises: []models.Exercise{
			{
				ID:              1,
				Name:            "Burpees",
				DurationSeconds: 40,
				Instructions:    "Full explosive movement: squat, plank, push-up, jump.",
				VideoURL:        "https://www.youtube.com/watch?v=JZQA08SlJnM",
				IsPremium:       true,
			},
			{
				ID:              2,
				Name:            "Mountain Climbers",
				DurationSeconds: 40,
				Instructions:    "Alternate legs quickly while keeping your core engaged.",
				VideoURL:        "https://www.youtube.com/watch?v=nmwgirgXLYM",
				IsPremium:       true,
			},
			{
				ID:              3,
				Name:            "Jump Squats",
				DurationSeconds: 40,
				Instructions:    "Squat with an explosive jump. Land softly.",
				VideoURL:        "https://www.youtube.com/watch?v=A-cFYWvaHr0",
				IsPremium:       true,
			},
		},
		IsPremium: true,
	},
	{
		ID:       3,
		Title:    "Workout C: Stretching",
		Duration: "10 min",
		Type:     "Stretching",
		Level:    models.LevelBeginner,
		Exercises: []models.Exercise{
			{
				ID:              1,
				Name:            "Leg Stretch",
				DurationSeconds: 60,
				Instructions:    "Stretch gently without forcing. Breathe deeply.",
				VideoURL:        "https://www.youtube.com/watch?v=g_tea8ZNk5A",
			},
			{
				ID:              2,
				Name:            "Arm Stretch",
				DurationSeconds: 60,
				Instructions:    "Hold the position for 30s on each side. No pain.",
				VideoURL:        "https://www.youtube.com/watch?v=SSbX4tm4rJE",
			},
			{
				ID:              3,
				Name:            "Back Stretch",
				DurationSeconds: 60,
				Instructions:    "Breathe deeply through the stretch. Relax your shoulders.",
				VideoURL:        "https://www.youtube.com/watch?v=4BOTvaRaDjI",
			},
		},
	},
}
