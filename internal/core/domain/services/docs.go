// Package services holds the stateless domain services of the amendment engine:
// impact assessment of proposed changes, the business-rule validator guarding
// every state change, and amendment number generation.
package services
