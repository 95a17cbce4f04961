// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data, similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Profile is the owner's public-facing resume data.
//
// The `json:"..."` tags control how the profile is written in API responses.
// Skills is a real slice here; the store keeps it as JSON text and the service
// layer converts between the two.
type Profile struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Bio        string    `json:"bio"`
	Skills     []string  `json:"skills"`
	Phone      string    `json:"phone"`
	GitHub     string    `json:"github"`
	Projects   string    `json:"projects"`
	Experience string    `json:"experience"`
	Education  string    `json:"education"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ProfileInput is the typed body of POST and PUT /api/profile.
//
// Every optional field defaults to its zero value when absent from the JSON
// body, so a missing bio is stored as "" and missing skills as [].
// A github value without a scheme ("github.com/ann") is accepted as-is.
//
// VALIDATION TAGS:
// `validate` holds go-playground/validator rules, `message` the text returned
// to the client when any rule on that field fails. Lengths are counted in
// characters, after the service trims surrounding whitespace.
type ProfileInput struct {
	Name       string   `json:"name"       validate:"min=2,max=100"     message:"Name must be between 2 and 100 characters"`
	Bio        string   `json:"bio"        validate:"max=500"           message:"Bio must not exceed 500 characters"`
	Skills     Skills   `json:"skills"     validate:"isarray"           message:"Skills must be an array of strings"`
	Phone      string   `json:"phone"      validate:"omitempty,phone"   message:"Enter a valid phone number"`
	GitHub     string   `json:"github"     validate:"omitempty,weburl"  message:"Enter a valid URL"`
	Projects   string   `json:"projects"   validate:"max=1000"          message:"Projects description must not exceed 1000 characters"`
	Experience string   `json:"experience" validate:"max=1000"          message:"Experience description must not exceed 1000 characters"`
	Education  string   `json:"education"  validate:"max=1000"          message:"Education description must not exceed 1000 characters"`
}

// DefaultProfile is seeded into an empty store so GET /api/profile has
// something to show on a fresh install.
func DefaultProfile() ProfileInput {
	return ProfileInput{
		Name:       "Portfolio Owner",
		Bio:        "Developer focused on adaptive solutions and new technology",
		Skills:     NewSkills("Adaptability"),
		Phone:      "+77780958898",
		GitHub:     "https://github.com",
		Projects:   "Building and shipping solutions on top of modern language models.",
		Experience: "Studying and applying modern technologies with a focus on practical results.",
		Education:  "Self-education and hands-on software development experience.",
	}
}
