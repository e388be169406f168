// Package types defines the persisted entities of the meal planner data
// layer (users, recipes, ingredients, meal plans, grocery items, nutrition
// goals), the derived nutrition value objects, and the standard errors
// shared by the storage and repository layers.
package types
